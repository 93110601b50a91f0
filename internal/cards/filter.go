package cards

import "strings"

// FilterOptions narrows a batch of contacts. Zero values match everything.
type FilterOptions struct {
	Companies []string
	FreeWords string
	// RequireLogo drops contacts without a logo.
	RequireLogo bool
}

func containsAny(hay string, needles []string) bool {
	hay = strings.ToLower(hay)
	for _, n := range needles {
		if strings.Contains(hay, strings.ToLower(n)) {
			return true
		}
	}
	return false
}

func Filter(contacts []ContactInfo, opt FilterOptions) []ContactInfo {
	var out []ContactInfo
	for _, c := range contacts {
		if !c.Renderable() {
			continue
		}
		if opt.RequireLogo && c.Logo == "" {
			continue
		}
		if len(opt.Companies) > 0 && !containsAny(c.Company, opt.Companies) {
			continue
		}
		if opt.FreeWords != "" {
			ok := true
			for _, k := range strings.Fields(opt.FreeWords) {
				if !containsAny(c.Name, []string{k}) &&
					!containsAny(c.JobTitle, []string{k}) &&
					!containsAny(c.Company, []string{k}) &&
					!containsAny(c.Email, []string{k}) {
					ok = false
					break
				}
			}
			if !ok {
				continue
			}
		}
		out = append(out, c)
	}
	return out
}
