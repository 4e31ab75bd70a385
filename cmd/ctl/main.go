// campustrackctl is a small terminal client for the campustrack backend.
// It drives the same data layer the UI uses: the gateway for HTTP, the
// store for collections and the kv store for session continuity.
//
// Usage:
//
//	campustrackctl [flags] <command> [args]
//
// Commands:
//
//	login <email> <password>    authenticate and persist the session
//	logout                      drop the session
//	whoami                      show the persisted user
//	events                      list events
//	activities [status]         list activities, optionally by status
//	search <query>              search events and activities
//	students                    list students
//	register <eventId> <stuId>  register a student for an event
//	stats                       show aggregate statistics
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/campustrack/campustrack/internal/app/models"
	"github.com/campustrack/campustrack/internal/client/bus"
	"github.com/campustrack/campustrack/internal/client/gateway"
	"github.com/campustrack/campustrack/internal/client/kv"
	"github.com/campustrack/campustrack/internal/client/store"
	"github.com/campustrack/campustrack/internal/pkg/logger"
)

func main() {
	baseURL := flag.String("base", "http://localhost:8080/api/v1", "backend base URL")
	kvPath := flag.String("kv", "campustrack.db", "path to the local session database")
	offline := flag.Bool("offline", false, "use the embedded demo dataset instead of the backend")
	flag.Parse()

	logger.Configure(logger.Config{Level: logger.WarnLevel, Pretty: true, Output: os.Stderr})

	if flag.NArg() == 0 {
		flag.Usage()
		os.Exit(2)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	persist, err := kv.Open(*kvPath)
	if err != nil {
		fail("open session store: %v", err)
	}
	defer persist.Close()

	b := bus.New()
	gw := gateway.New(*baseURL, gateway.WithKV(persist), gateway.WithBus(b))

	var st store.Store
	if *offline {
		fixture, err := store.NewFixtureStore(b, persist)
		if err != nil {
			fail("load demo dataset: %v", err)
		}
		st = fixture
	} else {
		st = store.NewRemoteStore(gw, b)
	}

	args := flag.Args()
	switch args[0] {
	case "login":
		if len(args) != 3 {
			fail("usage: login <email> <password>")
		}
		session, err := gw.Login(ctx, gateway.Credentials{Email: args[1], Password: args[2]})
		if err != nil {
			fail("login: %v", err)
		}
		fmt.Printf("logged in as %s (%s)\n", session.User.Name, session.User.Role)

	case "logout":
		if err := gw.Logout(ctx); err != nil {
			fail("logout: %v", err)
		}
		fmt.Println("logged out")

	case "whoami":
		user, ok := gw.CurrentUser()
		if !ok {
			fail("not logged in")
		}
		fmt.Printf("%s <%s> role=%s\n", user.Name, user.Email, user.Role)

	case "events":
		events, err := st.GetAllEvents(ctx)
		if err != nil {
			fail("list events: %v", err)
		}
		printEvents(events)

	case "activities":
		var activities []models.Activity
		if len(args) > 1 {
			activities, err = st.GetActivitiesByStatus(ctx, models.Status(args[1]))
		} else {
			activities, err = st.GetAllActivities(ctx)
		}
		if err != nil {
			fail("list activities: %v", err)
		}
		printActivities(activities)

	case "search":
		if len(args) != 2 {
			fail("usage: search <query>")
		}
		events, err := st.SearchEvents(ctx, args[1])
		if err != nil {
			fail("search events: %v", err)
		}
		activities, err := st.SearchActivities(ctx, args[1])
		if err != nil {
			fail("search activities: %v", err)
		}
		printEvents(events)
		printActivities(activities)

	case "students":
		students, err := st.GetAllStudents(ctx)
		if err != nil {
			fail("list students: %v", err)
		}
		w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
		fmt.Fprintln(w, "ID\tNAME\tDEPARTMENT\tYEAR\tGPA")
		for _, s := range students {
			fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%.1f\n", s.ID, s.Name, s.Department, s.Year, s.GPA)
		}
		w.Flush()

	case "register":
		if len(args) != 3 {
			fail("usage: register <eventId> <studentId>")
		}
		reg, err := st.RegisterForEvent(ctx, args[1], args[2])
		if err != nil {
			fail("register: %v", err)
		}
		fmt.Printf("registered: %s (payment %s)\n", reg.ID, reg.PaymentStatus)

	case "stats":
		stats, err := st.GetStatistics(ctx)
		if err != nil {
			fail("statistics: %v", err)
		}
		fmt.Printf("students:     %d\n", stats.TotalStudents)
		fmt.Printf("faculty:      %d\n", stats.TotalFaculty)
		fmt.Printf("activities:   %d (%d pending, %d approved, %d rejected)\n",
			stats.TotalActivities, stats.PendingActivities, stats.ApprovedActivities, stats.RejectedActivities)
		fmt.Printf("certificates: %d (%d pending)\n", stats.TotalCertificates, stats.PendingCertificates)
		fmt.Printf("events:       %d (%d open)\n", stats.TotalEvents, stats.OpenEvents)

	default:
		fail("unknown command %q", args[0])
	}
}

func printEvents(events []models.Event) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTITLE\tSTATUS\tREGISTERED\tSTARTS")
	for _, e := range events {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d/%d\t%s\n",
			e.ID, e.Title, e.Status, e.RegistrationCount, e.MaxParticipants,
			e.Dates.StartDate.Format("2006-01-02"))
	}
	w.Flush()
}

func printActivities(activities []models.Activity) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tSTUDENT\tTITLE\tSTATUS\tCREDITS")
	for _, a := range activities {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", a.ID, a.StudentID, a.Title, a.Status, a.Credits)
	}
	w.Flush()
}

func fail(format string, args ...interface{}) {
	fmt.Fprintf(os.Stderr, format+"\n", args...)
	os.Exit(1)
}
