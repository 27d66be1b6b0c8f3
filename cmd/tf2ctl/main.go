// cmd/tf2ctl/main.go
// Entrypoint for the `tf2ctl` CLI binary.  The file is intentionally tiny: it
// delegates all logic to the root command defined in root.go.
package main

func main() {
	Execute()
}
