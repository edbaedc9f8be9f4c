package main

import (
	"encoding/json"
	"fmt"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/vastriantafyllou/goal-tracker/api/transport"
	"github.com/vastriantafyllou/goal-tracker/domain"
	"github.com/vastriantafyllou/goal-tracker/query"
	categoriesUC "github.com/vastriantafyllou/goal-tracker/usecase/categories"
	goalsUC "github.com/vastriantafyllou/goal-tracker/usecase/goals"
	usersUC "github.com/vastriantafyllou/goal-tracker/usecase/users"
)

const dateLayout = "2006-01-02"

func (a *app) printJSON(v interface{}) error {
	enc := json.NewEncoder(a.out)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) printLine(text string) error {
	if a.asJSON {
		return a.printJSON(map[string]string{"message": text})
	}
	_, err := fmt.Fprintln(a.out, text)
	return err
}

func (a *app) table(header string, rows func(w *tabwriter.Writer)) error {
	w := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, header)
	rows(w)
	return w.Flush()
}

func (a *app) printSession(s domain.Session) error {
	if a.asJSON {
		return a.printJSON(transport.NewSessionView(s))
	}
	if !s.IsAuthenticated() {
		return a.printLine("Not logged in.")
	}
	line := fmt.Sprintf("Logged in as %s (%s)", s.Username, s.Role)
	if !s.ExpiresAt.IsZero() {
		line += ", token expires " + s.ExpiresAt.Local().Format(time.RFC1123)
	}
	return a.printLine(line)
}

func (a *app) printGoals(view *goalsUC.View) error {
	if a.asJSON {
		return a.printJSON(view)
	}
	now := a.now()
	err := a.table("ID\tTITLE\tSTATUS\tDUE\tCATEGORY", func(w *tabwriter.Writer) {
		for _, g := range view.Goals {
			due := "-"
			if d, ok := g.Due(); ok {
				due = d.Format(dateLayout)
				if g.IsOverdue(now) {
					due += " (overdue)"
				}
			}
			category := g.Category()
			if category == "" {
				category = "-"
			}
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", g.ID, g.Title, g.Status, due, category)
		}
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "%d of %d goals\n", len(view.Goals), view.Total)
	return err
}

func (a *app) printStats(stats query.GoalStats) error {
	if a.asJSON {
		return a.printJSON(stats)
	}
	return a.table("STATUS\tCOUNT", func(w *tabwriter.Writer) {
		for _, s := range domain.GoalStatuses {
			fmt.Fprintf(w, "%s\t%d\n", s, stats.Count(s))
		}
		fmt.Fprintf(w, "Overdue\t%d\n", stats.Overdue)
		fmt.Fprintf(w, "Total\t%d\n", stats.Total)
	})
}

func (a *app) printCategories(view *categoriesUC.View) error {
	if a.asJSON {
		return a.printJSON(view)
	}
	err := a.table("ID\tNAME\tGOALS", func(w *tabwriter.Writer) {
		for _, c := range view.Categories {
			fmt.Fprintf(w, "%d\t%s\t%d\n", c.ID, c.Name, c.Goals())
		}
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "%d of %d categories, %d goals\n", len(view.Categories), view.Total, view.TotalGoals)
	return err
}

func (a *app) printUsers(view *usersUC.PageView) error {
	if a.asJSON {
		return a.printJSON(view)
	}
	err := a.table("ID\tUSERNAME\tNAME\tEMAIL\tROLE", func(w *tabwriter.Writer) {
		for _, u := range view.Users {
			fmt.Fprintf(w, "%s\t%s\t%s %s\t%s\t%s\n", strconv.FormatInt(u.ID, 10), u.Username, u.Firstname, u.Lastname, u.Email, u.Role)
		}
	})
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(a.out, "page %d of %d (%d users)\n", view.PageNumber, view.TotalPages, view.TotalRecords)
	return err
}
