package main

import "github.com/pgrigo01/nfs-profile/cmd"

func main() {
	cmd.Execute()
}
