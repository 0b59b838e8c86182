package models

// User is the public shape returned by the mock user listing.
type User struct {
	ID    int    `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// DemoUsers is the static data set served by /api/users.
var DemoUsers = []User{
	{ID: 1, Name: "Alice Johnson", Email: "alice@example.com"},
	{ID: 2, Name: "Bob Smith", Email: "bob@example.com"},
	{ID: 3, Name: "Carol Williams", Email: "carol@example.com"},
}

// FindUser returns the user with the given id.
func FindUser(users []User, id int) (User, bool) {
	for _, u := range users {
		if u.ID == id {
			return u, true
		}
	}
	return User{}, false
}
