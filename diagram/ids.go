package diagram

import "strconv"

// EnsureConnectorIDs gives every connector without an ID the next free
// "c<n>" name. Existing IDs are never changed, so duplicates are left for
// Validate to report.
func EnsureConnectorIDs(d *Document) {
	if d == nil || len(d.Connectors) == 0 {
		return
	}

	used := make(map[string]bool, len(d.Connectors))
	var missing []int
	for i, c := range d.Connectors {
		if c.ID == "" {
			missing = append(missing, i)
			continue
		}
		used[c.ID] = true
	}

	next := 1
	for _, i := range missing {
		for used["c"+strconv.Itoa(next)] {
			next++
		}
		id := "c" + strconv.Itoa(next)
		d.Connectors[i].ID = id
		used[id] = true
	}
}
