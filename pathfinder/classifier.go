package pathfinder

import "strings"

// Classifier maps a dependency name to its severity score and tag set using
// the externally supplied classification inputs.
type Classifier struct {
	inputs *Inputs
}

// NewClassifier creates a classifier over one run's inputs.
func NewClassifier(inputs *Inputs) *Classifier {
	return &Classifier{inputs: inputs}
}

// Classify computes the record for a name. Classification is stateless:
// the same name always yields the same record for the run's inputs.
func (c *Classifier) Classify(name string) DependencyRecord {
	rec := DependencyRecord{
		HighestCvssScore: NoScore,
		ReleaseInterval:  NoScore,
	}

	if c.inputs.DevDependencies[name] {
		rec.Tags |= TagDevelopment
	}
	if c.inputs.WithinProject[name] {
		rec.Tags |= TagWithinProject
	}
	if c.inputs.Lagging[name] {
		rec.Tags |= TagLagging
	}

	if interval, ok := c.inputs.ReleaseIntervals[name]; ok {
		rec.ReleaseInterval = interval
	}

	if score := c.highestCvss(name); score > NoScore {
		rec.HighestCvssScore = score
		rec.Tags |= TagVulnerable
	}

	return rec
}

// highestCvss returns the maximum CVSS score over findings whose subject
// identifier starts with name, or NoScore when nothing matches. Prefix
// matching is deliberate: scanner file identifiers carry trailing version
// and hash segments (e.g. "lodash-4.17.15.min.js").
func (c *Classifier) highestCvss(name string) float64 {
	best := float64(NoScore)

	for _, finding := range c.inputs.Findings {
		subject := strings.TrimSuffix(finding.FileName, ".js")
		subject = strings.TrimSuffix(subject, ".min")

		if !strings.HasPrefix(subject, name) {
			continue
		}

		for _, vuln := range finding.Vulnerabilities {
			if vuln.CVSS > best {
				best = vuln.CVSS
			}
		}
	}

	return best
}
