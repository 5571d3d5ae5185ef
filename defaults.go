package mongosettings

// coalesce returns def when v is the zero value of T, otherwise v. Options
// fields rely on it so that their zero values mean "use the default".
func coalesce[T comparable](v, def T) T {
	var zero T
	if v == zero {
		return def
	}
	return v
}
