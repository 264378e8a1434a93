package model

// Permissions gates each operation an account may perform. Fields default to
// false; an account absent from the configuration can do nothing.
type Permissions struct {
	Navigate bool `yaml:"navigate"`
	Upload   bool `yaml:"upload"`
	Download bool `yaml:"download"`
}

// Account is the visibility configuration resolved for an authenticated
// identity. Show and Hide are path-prefix lists; when both are set Show is
// checked first and Hide is never consulted.
type Account struct {
	Name        string      `yaml:"name"`
	Admin       bool        `yaml:"admin"`
	Permissions Permissions `yaml:"permissions"`
	Show        []string    `yaml:"show"`
	Hide        []string    `yaml:"hide"`
}

// AdminAccount returns the implicit configuration of an administrator:
// every permission granted, no visibility filtering.
func AdminAccount(name string) Account {
	return Account{
		Name:  name,
		Admin: true,
		Permissions: Permissions{
			Navigate: true,
			Upload:   true,
			Download: true,
		},
	}
}
