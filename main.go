package main

import (
	"context"

	"github.com/bjulian5/fleet/cmd"
)

func main() {
	ctx := context.Background()
	cmd.Execute(ctx)
}
