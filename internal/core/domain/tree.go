package domain

// DocumentNode wraps a record plus its resolved children, forming the
// assembled tree of a publication. Built only from index-kind records;
// leaf-kind records have no children.
type DocumentNode struct {
	// Record is the resolved record at this position.
	Record Record

	// Children are the resolved child nodes, in the order declared by
	// the parent's reference tags.
	Children []*DocumentNode

	// Linked marks a node that was already expanded elsewhere in the
	// tree (or upward on this path) and is referenced here without
	// being expanded again.
	Linked bool
}

// ThreadNode wraps a comment record plus its resolved replies.
type ThreadNode struct {
	// Record is the comment record.
	Record Record

	// Replies are the child comments, ordered chronologically ascending.
	Replies []*ThreadNode
}
