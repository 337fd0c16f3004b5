package main

import (
	"context"
	"fmt"
	"os"

	"github.com/MKhiriev/planner-sync/internal/client"
	"github.com/MKhiriev/planner-sync/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	info := models.NewAppBuildInfo(buildVersion, buildDate, buildCommit)

	if err := client.Execute(context.Background(), info, os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
