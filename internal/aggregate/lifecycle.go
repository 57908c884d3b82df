package aggregate

// lifecycleScripts are the script names npm runs implicitly around install,
// publish, version, test, start, stop and restart.
var lifecycleScripts = map[string]bool{
	"preinstall":     true,
	"install":        true,
	"postinstall":    true,
	"preuninstall":   true,
	"uninstall":      true,
	"postuninstall":  true,
	"prepublish":     true,
	"preprepare":     true,
	"prepare":        true,
	"postprepare":    true,
	"prepublishOnly": true,
	"prepack":        true,
	"postpack":       true,
	"publish":        true,
	"postpublish":    true,
	"preversion":     true,
	"version":        true,
	"postversion":    true,
	"pretest":        true,
	"posttest":       true,
	"prestop":        true,
	"stop":           true,
	"poststop":       true,
	"prestart":       true,
	"poststart":      true,
	"prerestart":     true,
	"restart":        true,
	"postrestart":    true,
	"preshrinkwrap":  true,
	"shrinkwrap":     true,
	"postshrinkwrap": true,
	"dependencies":   true,
}

// IsLifecycle reports whether key is an npm lifecycle script name.
func IsLifecycle(key string) bool {
	return lifecycleScripts[key]
}
