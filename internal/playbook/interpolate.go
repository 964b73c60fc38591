package playbook

import (
	"strings"

	"github.com/sells-group/playbook-cli/internal/model"
)

// Placeholders recognised in template strings.
const (
	PlaceholderCustomerName = "{customerName}"
	PlaceholderContactName  = "{contactName}"
	PlaceholderContactRole  = "{contactRole}"
	PlaceholderAccountValue = "{accountValue}"
	PlaceholderCustomSignal = "{customSignal}"
)

// interpolator performs literal placeholder replacement for one context.
// Every occurrence of every placeholder is replaced; unknown braces are left
// untouched.
type interpolator struct {
	r *strings.Replacer
}

func newInterpolator(cc model.CustomerContext) interpolator {
	return interpolator{r: strings.NewReplacer(
		PlaceholderCustomerName, cc.CustomerName,
		PlaceholderContactName, cc.ContactName,
		PlaceholderContactRole, cc.ContactRole,
		PlaceholderAccountValue, cc.AccountValue,
		PlaceholderCustomSignal, cc.CustomSignal,
	)}
}

func (i interpolator) apply(s string) string {
	return i.r.Replace(s)
}

func (i interpolator) applyAll(in []string) []string {
	out := make([]string, len(in))
	for idx, s := range in {
		out[idx] = i.apply(s)
	}
	return out
}

// Interpolate replaces every placeholder occurrence in s with the matching
// context field.
func Interpolate(s string, cc model.CustomerContext) string {
	return newInterpolator(cc).apply(s)
}
