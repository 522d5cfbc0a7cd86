package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"sort"
	"strings"
	"syscall"

	"github.com/MKhiriev/zero-waste-market/internal/adapter"
	"github.com/MKhiriev/zero-waste-market/internal/client"
	"github.com/MKhiriev/zero-waste-market/models"
)

var (
	buildVersion string
	buildDate    string
	buildCommit  string
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)

	rt := &runtime{}
	root := newRootCmd(rt, models.NewBuildInfo(buildVersion, buildDate, buildCommit))
	err := root.ExecuteContext(ctx)

	rt.close()
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, "Error:", userMessage(err))
		os.Exit(1)
	}
}

// userMessage turns err into the text shown to the user.
func userMessage(err error) string {
	var respErr *adapter.ResponseError
	switch {
	case errors.Is(err, client.ErrSessionExpired):
		return client.MsgSessionExpired
	case errors.Is(err, client.ErrNotLoggedIn):
		return "You are not logged in. Run the login command first."
	case errors.Is(err, adapter.ErrTransport):
		return "Cannot reach the server: " + err.Error()
	case errors.As(err, &respErr):
		if len(respErr.Fields) == 0 {
			return respErr.Message
		}
		fields := make([]string, 0, len(respErr.Fields))
		for name, msg := range respErr.Fields {
			fields = append(fields, name+": "+msg)
		}
		sort.Strings(fields)
		return respErr.Message + " (" + strings.Join(fields, "; ") + ")"
	default:
		return err.Error()
	}
}
