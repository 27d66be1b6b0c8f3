// pkg/tf2/graph_node.go
// edgeKey identifies one directed (parent, child) edge. The pair is hashed
// and compared as a whole, so it is usable directly as a Go map key:
// (A,B) and (B,A) are distinct edges.
package tf2

type edgeKey struct {
    Parent string
    Child  string
}
