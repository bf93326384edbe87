package common

type nodeKind int

const (
	noNode nodeKind = iota
	rootNode
	fileNode
)

// NodeID identifies a row of the file tree: either a root directory or a
// file below one. The zero value identifies nothing.
type NodeID struct {
	kind nodeKind
	root string
	file string
}

// RootID identifies the root directory at path
func RootID(root string) NodeID {
	return NodeID{kind: rootNode, root: root}
}

// FileID identifies file under root
func FileID(root, file string) NodeID {
	return NodeID{kind: fileNode, root: root, file: file}
}

func (id NodeID) IsZero() bool { return id.kind == noNode }
func (id NodeID) IsRoot() bool { return id.kind == rootNode }
func (id NodeID) IsFile() bool { return id.kind == fileNode }

// Root returns the root directory of the node
func (id NodeID) Root() string {
	return id.root
}

// File returns the file path, or "" for a root
func (id NodeID) File() string {
	return id.file
}

// Parent returns the root a file belongs to. A root is its own parent.
func (id NodeID) Parent() NodeID {
	if id.kind == fileNode {
		return RootID(id.root)
	}
	return id
}

// String is the identity recorded as a snippet's source: the file path for
// files, the directory for roots.
func (id NodeID) String() string {
	if id.kind == fileNode {
		return id.file
	}
	return id.root
}
