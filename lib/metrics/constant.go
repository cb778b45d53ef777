package metrics

const (
	Namespace           = "council"
	CollectiveSubsystem = "collective"
	APISubsystem        = "api"
)

const (
	CollectiveKind    = "kind"
	CollectiveApprove = "approve"
	CollectiveResult  = "result"
)

const (
	ResultApproved    = "approved"
	ResultDisapproved = "disapproved"
	ResultExpired     = "expired"
	ResultSuccess     = "success"
	ResultFailure     = "failure"
)
