package view

// GenreOptions returns the genre labels offered by the venue and artist
// forms. The mutation path stores whatever the form submits, so this list
// is presentation-only.
func GenreOptions() []string {
	return []string{
		"Alternative", "Blues", "Classical", "Country", "Electronic",
		"Folk", "Funk", "Hip-Hop", "Heavy Metal", "Instrumental",
		"Jazz", "Musical Theatre", "Pop", "Punk", "R&B",
		"Reggae", "Rock n Roll", "Soul", "Other",
	}
}

func hasString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
