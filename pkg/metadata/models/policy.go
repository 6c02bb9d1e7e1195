package models

// Policy is the closed enum of upload placement strategies (§9).
type Policy string

const (
	// PolicyPush writes to the primary plus every warmup region.
	PolicyPush Policy = "push"
	// PolicyWriteLocal writes only to the client's region.
	PolicyWriteLocal Policy = "write_local"
	// PolicyCopyOnRead writes to the client's region as a pull-through
	// replica of an existing primary.
	PolicyCopyOnRead Policy = "copy_on_read"
)

// OpType is the closed enum of delete-state-machine classifications (§4.5).
type OpType string

const (
	OpTypeAdd     OpType = "add"
	OpTypeReplace OpType = "replace"
	OpTypeDelete  OpType = "delete"
)
