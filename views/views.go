package views

import "github.com/eringen/devopsite"

// Default returns the complete set of built-in components.
func Default() devopsite.ViewFuncs {
	return devopsite.ViewFuncs{
		Page:           Page,
		BlogIndex:      BlogIndex,
		BlogList:       BlogList,
		Post:           Post,
		Projects:       Projects,
		Project:        Project,
		AdminLogin:     AdminLogin,
		AdminDashboard: AdminDashboard,
		NotFound:       NotFound,
		ServerError:    ServerError,
	}
}
