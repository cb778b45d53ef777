package errors

// governance
var (
	NotMember           = NewError(100, "account is not a member of the council")
	NotRoomOwner        = NewError(101, "account is not the owner of the room")
	DuplicateProposal   = NewError(102, "duplicate proposals not allowed")
	ProposalMissing     = NewError(103, "proposal must exist")
	WrongIndex          = NewError(104, "mismatched proposal index")
	DuplicateVote       = NewError(105, "duplicate vote ignored")
	TooManyProposals    = NewError(106, "too many active proposals")
	WrongProposalLength = NewError(107, "the given length bound for the proposal was too low")
	VoteExpire          = NewError(108, "vote expired")
	DisallowFunc        = NewError(109, "action is not allowed by the filter")
	RoomNotFound        = NewError(110, "room not found")
	BadOrigin           = NewError(111, "origin is not allowed to dispatch this action")
	NotRoot             = NewError(112, "caller is not root")
	RoomAlreadyExists   = NewError(113, "room already exists")
	InvalidAddress      = NewError(114, "invalid account address")
	AlreadyMember       = NewError(115, "account is already a member of the council")
)

// storage
var (
	StorageRecordDoesNotExist  = NewError(200, "record does not exist in storage")
	StorageRecordAlreadyExists = NewError(201, "record already exists in storage")
	StorageCoreError           = NewError(202, "storage error")
	InvalidStorageConfig       = NewError(203, "invalid storage config")
)

// action and config
var (
	UnknownActionType      = NewError(300, "unknown action type")
	InvalidAction          = NewError(301, "invalid action")
	ActionBodyInsufficient = NewError(302, "action body insufficient")
	InvalidConfig          = NewError(303, "invalid config")
)
