package scoring

import "github.com/vulnscope/vulnscope/internal/core/domain"

// ComplianceStatus evaluates which compliance frameworks the current posture
// satisfies. Each framework is an independent predicate; evaluation order
// does not matter.
func (e *Engine) ComplianceStatus(patchCompliance, exposureScore float64, criticalCount int, securityMaturity float64, exploitCount int) domain.ComplianceStatus {
	return domain.ComplianceStatus{
		GDPR:     patchCompliance > 80 && exposureScore < 50,
		SOX:      patchCompliance > 85 && criticalCount == 0,
		HIPAA:    patchCompliance > 90 && exposureScore < 40,
		PCI:      patchCompliance > 95 && exploitCount == 0,
		ISO27001: securityMaturity > 70,
		NIST:     patchCompliance > 80 && securityMaturity > 60,
	}
}

// Improvement area labels, emitted in a fixed order so output is stable.
const (
	areaPatchManagement  = "Improve patch management"
	areaReduceExposure   = "Reduce vulnerability exposure"
	areaAddressExploits  = "Address exploitable vulnerabilities"
	areaPrioritizeKEV    = "Prioritize KEV vulnerabilities"
	areaSecurityPractice = "Enhance security practices"
)

// ImprovementAreas lists the posture dimensions that need attention, in a
// fixed order. Callers may rely on the ordering.
func (e *Engine) ImprovementAreas(patchCompliance, exposureScore float64, exploitCount, kevCount int, securityMaturity float64) []string {
	areas := []string{}
	if patchCompliance < 80 {
		areas = append(areas, areaPatchManagement)
	}
	if exposureScore > 60 {
		areas = append(areas, areaReduceExposure)
	}
	if exploitCount > 0 {
		areas = append(areas, areaAddressExploits)
	}
	if kevCount > 0 {
		areas = append(areas, areaPrioritizeKEV)
	}
	if securityMaturity < 60 {
		areas = append(areas, areaSecurityPractice)
	}
	return areas
}
