package collective

// Caller is the authenticated origin of the privileged calls.
type Caller struct {
	Root    bool
	Account string
}

func RootCaller() Caller {
	return Caller{Root: true}
}

func SignedCaller(account string) Caller {
	return Caller{Account: account}
}

func (c Caller) IsRoot() bool {
	return c.Root
}
