package domain

// Attendees is an ordered list of users, unique by ID.
type Attendees []User

// Add appends u unless a user with the same ID is already present.
func (a *Attendees) Add(u User) {
	if a.Contains(u.ID) {
		return
	}
	*a = append(*a, u)
}

// Contains reports whether a user with the given ID is in the list.
func (a Attendees) Contains(userID int64) bool {
	for _, u := range a {
		if u.ID == userID {
			return true
		}
	}
	return false
}
