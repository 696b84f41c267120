package recon

import (
	"dgrhcli/pkg/contracts/domain"
)

// FilterWindow keeps only alarm records whose site key matched a reference
// row and whose timestamp lies inside that site's refuelling window,
// inclusive on both bounds. Inner-join semantics: alarms for sites absent
// from the reference are silently dropped, as are rows whose timestamp or
// window failed to parse.
func FilterWindow(alarms []domain.AlarmRecord, index map[string]domain.RefuellingRecord) []domain.AlarmRecord {
	out := make([]domain.AlarmRecord, 0, len(alarms))
	for _, a := range alarms {
		ref, ok := index[a.SiteKey]
		if !ok {
			continue
		}
		if !ref.Contains(a.RaisedAt) {
			continue
		}
		out = append(out, a)
	}
	return out
}
