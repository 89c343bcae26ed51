// main.go
//
// A role-based records service for notary signing operations
// Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC
//
// This file is part of notary-records.
// notary-records is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// notary-records is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with notary-records.
// If not, see <https://www.gnu.org/licenses/>.
// Additional terms under GNU AGPL version 3 section 7:
// a) The reasonable legal notice of original copyright and author attribution must be preserved
//    by including the string: "Copyright (c) 2026 Alex Grant <info@localnerve.com> (https://www.localnerve.com), LocalNerve LLC"
//    in this material, copies, or source code of derived works.

package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"time"

	"github.com/localnerve/notary-records/internal/config"
	"github.com/localnerve/notary-records/internal/database"
	"github.com/localnerve/notary-records/internal/services"
	"github.com/localnerve/notary-records/internal/utils"
	"go.uber.org/zap"
)

// With -url the running server is asked over HTTP. Without it the store is
// checked directly using the server's configuration.
func main() {
	var url string
	flag.StringVar(&url, "url", "", "base URL of a running server, e.g. http://localhost:3000")
	var timeout time.Duration
	flag.DurationVar(&timeout, "timeout", 5*time.Second, "request timeout")
	flag.Parse()

	log := zap.NewNop()

	var result any
	healthy := false

	if url != "" {
		status, err := utils.PingService(url, timeout)
		if err != nil && status == nil {
			fmt.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}
		result = status
		healthy = err == nil && status.Status == "healthy"
	} else {
		// Load configuration
		cfg, err := config.Load()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
			os.Exit(1)
		}

		db, err := database.Connect(cfg, log)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Failed to connect to database: %v\n", err)
			os.Exit(1)
		}
		defer database.Close(db)

		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		check := services.HealthCheck(ctx, cfg, db, nil, log)
		result = check
		healthy = check.Status == "healthy"
	}

	// Output result as JSON
	output, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to marshal health check result: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(output))

	// Exit with appropriate code
	if !healthy {
		os.Exit(1)
	}
}
