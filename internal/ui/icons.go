package ui

import "os"

// nfEnabled reports whether Nerd Font icons should be rendered.
// Default to enabled; allow disabling via NERDFONT=0
func nfEnabled() bool {
	return os.Getenv("NERDFONT") != "0"
}

func nf(icon, fallback string) string {
	if nfEnabled() {
		return icon
	}
	return fallback
}

// Pane icons
func IconTargets() string   { return nf("\uf05b", "@") } // fa-crosshairs
func IconTemplates() string { return nf("\uf15c", "#") } // fa-file-text
func IconCustom() string    { return nf("\uf07b", "+") } // fa-folder
func IconOutput() string    { return nf("\uf120", ">") } // fa-terminal

// Status bar icons
func IconProxy() string   { return nf("\uf0ec", "proxy") } // fa-exchange
func IconCache() string   { return nf("\uf1c0", "cache") } // fa-database
func IconResults() string { return nf("\uf188", "res") }   // fa-bug
func IconVersion() string { return nf("\uf02b", "v") }

// Selection marks
func IconChecked() string   { return nf("\uf14a", "[x]") }
func IconUnchecked() string { return nf("\uf096", "[ ]") }
