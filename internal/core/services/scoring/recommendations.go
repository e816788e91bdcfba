package scoring

import (
	"fmt"
	"hash/fnv"

	"github.com/vulnscope/vulnscope/internal/core/domain"
)

// exposureEntryScore weights a ranking entry for the monitoring
// recommendation trigger.
func exposureEntryScore(entry domain.ExposureEntry) float64 {
	return entry.MaxSeverityScore*10 +
		float64(entry.VulnerabilityCount)*2 +
		float64(entry.ExploitCount)*5
}

// Recommendations generates the prioritized remediation list from the
// aggregates. Emission order is fixed; two calls with identical inputs yield
// identical lists, including IDs, which are content-derived rather than
// timestamped so the output is idempotent.
func (e *Engine) Recommendations(vulnAgg domain.VulnerabilityAggregate, patchAgg domain.PatchAggregate, ranking []domain.ExposureEntry) []domain.Recommendation {
	recs := []domain.Recommendation{}

	if vulnAgg.Critical > 0 {
		recs = append(recs, domain.Recommendation{
			ID:       recommendationID("patch", domain.PriorityCritical, vulnAgg.Critical, vulnAgg.Total),
			Category: "patch",
			Priority: domain.PriorityCritical,
			Title:    "Patch critical vulnerabilities",
			Description: fmt.Sprintf("%d critical-severity vulnerabilities are open in your tracked set. "+
				"These carry the highest likelihood of complete compromise.", vulnAgg.Critical),
			Impact:    "Eliminates the highest-severity attack paths",
			Effort:    "Varies by vendor patch availability",
			Timeframe: "Immediate (within 24 hours)",
			Resources: []string{
				"Vendor security advisories",
				"CISA Known Exploited Vulnerabilities catalog",
			},
		})
	}

	if vulnAgg.WithExploits > 0 {
		recs = append(recs, domain.Recommendation{
			ID:       recommendationID("patch", domain.PriorityHigh, vulnAgg.WithExploits, vulnAgg.Total),
			Category: "patch",
			Priority: domain.PriorityHigh,
			Title:    "Remediate vulnerabilities with public exploits",
			Description: fmt.Sprintf("%d tracked vulnerabilities have public exploit code available. "+
				"Exploit availability sharply raises the probability of opportunistic attacks.", vulnAgg.WithExploits),
			Impact:    "Removes targets with known working exploits",
			Effort:    "Moderate",
			Timeframe: "Within 1 week",
			Resources: []string{
				"Exploit-DB",
				"Vendor patch notes",
			},
		})
	}

	if patchAgg.AvgPatchTimeDays > 30 {
		recs = append(recs, domain.Recommendation{
			ID:       recommendationID("configuration", domain.PriorityMedium, int(patchAgg.AvgPatchTimeDays), patchAgg.PatchedCount),
			Category: "configuration",
			Priority: domain.PriorityMedium,
			Title:    "Shorten the patch cycle",
			Description: fmt.Sprintf("Average time to patch is %.0f days. Slow cycles leave known "+
				"vulnerabilities exposed long after fixes ship.", patchAgg.AvgPatchTimeDays),
			Impact:    "Reduces the window of exposure for every future vulnerability",
			Effort:    "Process change, automated patch tooling",
			Timeframe: "Within 1 month",
			Resources: []string{
				"Patch management policy templates",
			},
		})
	}

	if len(ranking) > 0 {
		top := ranking[0]
		if exposureEntryScore(top) > 50 {
			recs = append(recs, domain.Recommendation{
				ID:       recommendationID("monitoring", domain.PriorityHigh, top.VulnerabilityCount, top.ExploitCount, int(top.MaxSeverityScore*10)),
				Category: "monitoring",
				Priority: domain.PriorityHigh,
				Title:    fmt.Sprintf("Monitor %s closely", top.Subject),
				Description: fmt.Sprintf("%s is your most exposed package: %d vulnerabilities, "+
					"%d with exploits, max severity %.1f. Consider version upgrades or replacement.",
					top.Subject, top.VulnerabilityCount, top.ExploitCount, top.MaxSeverityScore),
				Impact:    "Concentrates attention on the highest-exposure dependency",
				Effort:    "Low, alerting configuration",
				Timeframe: "Within 2 weeks",
				Resources: []string{
					"Dependency monitoring tooling",
				},
			})
		}
	}

	return recs
}

// recommendationID derives a stable identifier from the category, priority
// and the counters that triggered the recommendation. Identical inputs
// always hash to the same ID.
func recommendationID(category string, priority domain.Priority, triggers ...int) string {
	h := fnv.New64a()
	fmt.Fprintf(h, "%s|%s", category, priority)
	for _, t := range triggers {
		fmt.Fprintf(h, "|%d", t)
	}
	return fmt.Sprintf("rec-%s-%016x", category, h.Sum64())
}
