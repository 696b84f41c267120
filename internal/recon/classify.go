package recon

import (
	"regexp"

	"dgrhcli/pkg/contracts/domain"
)

// classifierRule maps an alarm-description pattern to its type tag. Rules
// evaluate in fixed order, first match wins, so the mains rule takes
// precedence when a slogan mentions both the grid and the generator.
type classifierRule struct {
	pattern *regexp.Regexp
	tag     domain.AlarmType
}

// defaultRules is the ordered rule table over the uncontrolled alarm
// vocabulary seen in fleet exports. Best effort: false negatives are
// expected and left unclassified rather than guessed.
var defaultRules = []classifierRule{
	{regexp.MustCompile(`(?i)mains|ac\s*mains|grid\s*fail|grid\s*down`), domain.AlarmTypeMains},
	{regexp.MustCompile(`(?i)genset|generator|\bdg\b|diesel\s*gen`), domain.AlarmTypeGenerator},
}

// HighRunHourThreshold is the generator-alarm duration, in hours, at or
// above which a row is flagged for the continued high-RH justification.
const HighRunHourThreshold = 10

// Classifier tags windowed alarm records by matching their free-text
// slogan against the ordered rule table.
type Classifier struct {
	rules []classifierRule
}

// NewClassifier returns a classifier with the default rule table.
func NewClassifier() *Classifier {
	return &Classifier{rules: defaultRules}
}

// Tag returns the alarm type for a slogan, or AlarmTypeUnclassified when
// no rule matches.
func (c *Classifier) Tag(slogan string) domain.AlarmType {
	for _, rule := range c.rules {
		if rule.pattern.MatchString(slogan) {
			return rule.tag
		}
	}
	return domain.AlarmTypeUnclassified
}

// Classify tags every windowed alarm record and sets the high run-hour
// flag on qualifying generator rows. Unclassified rows are retained; the
// aggregator skips them.
func (c *Classifier) Classify(alarms []domain.AlarmRecord) []domain.ClassifiedAlarm {
	out := make([]domain.ClassifiedAlarm, len(alarms))
	for i, a := range alarms {
		tag := c.Tag(a.Slogan)
		out[i] = domain.ClassifiedAlarm{
			AlarmRecord: a,
			Type:        tag,
			HighRunHour: tag == domain.AlarmTypeGenerator && a.DurationHrs >= HighRunHourThreshold,
		}
	}
	return out
}
