// Command console is the terminal front-end to the academic API: sign
// in, browse the paginated listings and manage records through the
// same role gates and forms the graphical client uses.
package main

import (
	"fmt"
	"log"
	"os"

	"github.com/sisacad/academico/core"
	"github.com/sisacad/academico/core/session"
	logsvc "github.com/sisacad/academico/services/logger"
	"github.com/sisacad/academico/services/restapi"
	sessionstore "github.com/sisacad/academico/storage/session"
)

// tokenFunc adapts a closure to restapi.TokenSource; it breaks the
// construction cycle between the HTTP client and the session store.
type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func main() {
	conf := core.NewConfig()

	std := log.New(os.Stderr, "CONSOLE : ", log.LstdFlags)
	var logger core.Logger
	if conf.Debug {
		logger = logsvc.NewConsoleLogger(std)
	} else {
		logger = logsvc.NewRollbarLogger(std, conf)
	}

	storage := sessionstore.OpenFile(conf.SessionFile)

	var store *session.Store
	client := restapi.NewClient(conf, tokenFunc(func() string {
		if store == nil {
			return ""
		}
		return store.Token()
	}))
	store = session.NewStore(client.Auth(), storage, logger)

	cli := &commandLine{
		conf:          conf,
		store:         store,
		students:      client.Students(),
		teachers:      client.Teachers(),
		disciplines:   client.Disciplines(),
		registrations: client.Registrations(),
		out:           os.Stdout,
	}

	if err := cli.run(os.Args); err != nil {
		if err != errHelp {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}
		os.Exit(1)
	}
}
