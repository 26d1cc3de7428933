package models

// Profile holds the clinician display fields stored as Supabase user
// metadata. Populated on session restore, cleared on sign-out; never
// implicit ambient state.
type Profile struct {
	ID             string `json:"id"`
	Email          string `json:"email"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Title          string `json:"title"`
	Specialization string `json:"specialization"`
	License        string `json:"license"`
}

// DefaultProfileTitle is the honorific applied when none is stored.
const DefaultProfileTitle = "Dr."

// ProfileFromMetadata builds a Profile from a Supabase user metadata map.
func ProfileFromMetadata(id, email string, metadata map[string]interface{}) *Profile {
	p := &Profile{
		ID:    id,
		Email: email,
		Title: DefaultProfileTitle,
	}
	str := func(key string) string {
		v, _ := metadata[key].(string)
		return v
	}
	p.FirstName = str("first_name")
	p.LastName = str("last_name")
	p.Specialization = str("specialization")
	p.License = str("license")
	if t := str("title"); t != "" {
		p.Title = t
	}
	return p
}

// Metadata converts the editable profile fields back to a metadata map
// for the Supabase admin update call.
func (p *Profile) Metadata() map[string]interface{} {
	return map[string]interface{}{
		"first_name":     p.FirstName,
		"last_name":      p.LastName,
		"title":          p.Title,
		"specialization": p.Specialization,
		"license":        p.License,
	}
}
