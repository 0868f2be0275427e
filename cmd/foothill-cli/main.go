package main

import (
	"context"

	"foothill-backend/cmd/foothill-cli/commands"
	"foothill-backend/lib/telemetry"
)

func main() {
	telemetry.InitSlog(true)
	telemetry.SetupFromEnv(context.Background(), "foothill-cli")
	commands.ExecuteContext(context.Background())
}
