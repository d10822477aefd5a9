package email

const (
	subjectWelcomeFmt = "Welcome to %s"
	subjectRenamedFmt = "Your organization is now %s"
	subjectDeletedFmt = "%s has been deleted"
)
