package langprofile

// must panics on a registration error raised from an init() func -- a
// colliding profile name/extension is a programming error in the profile
// table itself, not a runtime condition callers can recover from.
func must(err error) {
	if err != nil {
		panic(err)
	}
}
