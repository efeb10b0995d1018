package dto

type StatusOutput struct {
	IsBlocking bool     `json:"isBlocking"`
	BlockList  []string `json:"blockList"`
}

type RuleOutput struct {
	ID         int
	RootDomain string
	Scope      string
	URLFilter  string
	Redirect   string
}

type ReconcileOutput struct {
	Removed int
	Added   int
}
