package mock

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// Common packages for realistic mock data
var commonPackages = []string{
	"openssl", "log4j", "nginx", "apache-httpd", "curl",
	"glibc", "linux-kernel", "openssh", "postgresql", "mysql",
	"redis", "elasticsearch", "jenkins", "gitlab", "wordpress",
	"struts", "spring-framework", "django", "rails", "express",
	"libxml2", "zlib", "sudo", "systemd", "bash",
}

var vendors = map[string]string{
	"openssl":          "OpenSSL Foundation",
	"log4j":            "Apache",
	"nginx":            "F5",
	"apache-httpd":     "Apache",
	"curl":             "curl project",
	"glibc":            "GNU",
	"linux-kernel":     "Linux",
	"openssh":          "OpenBSD",
	"postgresql":       "PostgreSQL",
	"mysql":            "Oracle",
	"redis":            "Redis Ltd",
	"elasticsearch":    "Elastic",
	"jenkins":          "Jenkins",
	"gitlab":           "GitLab",
	"wordpress":        "Automattic",
	"struts":           "Apache",
	"spring-framework": "VMware",
	"django":           "DSF",
	"rails":            "Rails Core",
	"express":          "OpenJS",
	"libxml2":          "GNOME",
	"zlib":             "zlib",
	"sudo":             "Todd Miller",
	"systemd":          "freedesktop",
	"bash":             "GNU",
}

var vulnTitles = []string{
	"Heap buffer overflow in %s",
	"Remote code execution in %s request parser",
	"SQL injection in %s query builder",
	"Path traversal in %s file handler",
	"Use-after-free in %s session management",
	"Integer overflow in %s length validation",
	"Authentication bypass in %s token verification",
	"Denial of service in %s header parsing",
	"Privilege escalation via %s configuration loading",
	"Information disclosure in %s error responses",
}

var severities = []domain.Severity{
	domain.SeverityCritical,
	domain.SeverityHigh,
	domain.SeverityMedium,
	domain.SeverityLow,
}

// DataGenerator produces synthetic vulnerability and engagement data for
// demo deployments.
type DataGenerator struct {
	rand    *rand.Rand
	year    int
	nextSeq int
}

// NewDataGenerator creates a new mock data generator.
func NewDataGenerator(seed int64) *DataGenerator {
	return &DataGenerator{
		rand:    rand.New(rand.NewSource(seed)),
		year:    time.Now().Year(),
		nextSeq: 10000,
	}
}

// GenerateVulnerability creates one synthetic vulnerability record.
func (g *DataGenerator) GenerateVulnerability() domain.VulnerabilityRecord {
	pkg := commonPackages[g.rand.Intn(len(commonPackages))]
	severity := g.weightedSeverity()

	g.nextSeq++
	record := domain.VulnerabilityRecord{
		ID:            fmt.Sprintf("CVE-%d-%d", g.year, g.nextSeq),
		Title:         fmt.Sprintf(vulnTitles[g.rand.Intn(len(vulnTitles))], pkg),
		Severity:      severity,
		CVSSScore:     g.scoreFor(severity),
		Package:       pkg,
		Vendor:        vendors[pkg],
		Status:        domain.VulnStatusOpen,
		PublishedDate: time.Now().UTC().AddDate(0, 0, -g.rand.Intn(365)),
	}

	// Exploitation state correlates with severity
	switch severity {
	case domain.SeverityCritical:
		record.HasExploit = g.rand.Float32() < 0.5
		record.IsKEV = g.rand.Float32() < 0.25
	case domain.SeverityHigh:
		record.HasExploit = g.rand.Float32() < 0.3
		record.IsKEV = g.rand.Float32() < 0.1
	default:
		record.HasExploit = g.rand.Float32() < 0.1
	}

	record.HasPatch = g.rand.Float32() < 0.7

	// Some records have already been remediated
	if record.HasPatch && g.rand.Float32() < 0.4 {
		patched := record.PublishedDate.AddDate(0, 0, 3+g.rand.Intn(60))
		record.Status = domain.VulnStatusPatched
		record.PatchedDate = &patched
	}

	return record
}

// GenerateVulnerabilities creates n synthetic records.
func (g *DataGenerator) GenerateVulnerabilities(n int) []domain.VulnerabilityRecord {
	records := make([]domain.VulnerabilityRecord, 0, n)
	for i := 0; i < n; i++ {
		records = append(records, g.GenerateVulnerability())
	}
	return records
}

// GenerateEngagement creates synthetic engagement events for a user against
// the given vulnerability ids, spread over the trailing 30 days.
func (g *DataGenerator) GenerateEngagement(userID string, vulnIDs []string, n int) []domain.EngagementEvent {
	if len(vulnIDs) == 0 {
		return nil
	}

	kinds := []domain.EngagementKind{
		domain.EngagementView, domain.EngagementView, domain.EngagementView,
		domain.EngagementBookmark, domain.EngagementComment, domain.EngagementExport,
	}

	events := make([]domain.EngagementEvent, 0, n)
	for i := 0; i < n; i++ {
		events = append(events, domain.EngagementEvent{
			UserID:          userID,
			Kind:            kinds[g.rand.Intn(len(kinds))],
			VulnerabilityID: vulnIDs[g.rand.Intn(len(vulnIDs))],
			Timestamp:       time.Now().UTC().Add(-time.Duration(g.rand.Intn(30*24)) * time.Hour),
		})
	}
	return events
}

// weightedSeverity skews the distribution towards the middle buckets,
// roughly matching real advisory feeds.
func (g *DataGenerator) weightedSeverity() domain.Severity {
	weights := []float32{0.12, 0.30, 0.40, 0.18} // critical, high, medium, low
	r := g.rand.Float32()
	cumulative := float32(0)
	for i, w := range weights {
		cumulative += w
		if r <= cumulative {
			return severities[i]
		}
	}
	return domain.SeverityMedium
}

// scoreFor returns a CVSS score inside the band for the severity bucket.
func (g *DataGenerator) scoreFor(severity domain.Severity) float64 {
	var lo, hi float64
	switch severity {
	case domain.SeverityCritical:
		lo, hi = 9.0, 10.0
	case domain.SeverityHigh:
		lo, hi = 7.0, 8.9
	case domain.SeverityMedium:
		lo, hi = 4.0, 6.9
	default:
		lo, hi = 0.1, 3.9
	}
	score := lo + g.rand.Float64()*(hi-lo)
	return float64(int(score*10)) / 10
}
