package usecase

import (
	"fmt"
	"strings"
	"time"

	"github.com/m-mizutani/octosync/pkg/domain/model"
	"github.com/m-mizutani/octosync/pkg/domain/types"
)

const timestampLayout = "2006-01-02 15:04:05"

// GenerateContent renders the README body for repo at now. The output depends only on its
// arguments, with now taken at second granularity.
func GenerateContent(repo types.RepoName, now time.Time) string {
	now = now.Truncate(time.Second)
	current := now.Format(timestampLayout)
	previous := now.AddDate(0, 0, -1).Format(timestampLayout)
	_, week := now.ISOWeek()

	var b strings.Builder

	fmt.Fprintf(&b, "# %s\n\n", repo)

	fmt.Fprintf(&b, "## 📅 Daily Update - %s\n\n", current)
	b.WriteString("**Today's Information:**\n")
	fmt.Fprintf(&b, "- **Date:** %s\n", current)
	fmt.Fprintf(&b, "- **Day:** %s\n", now.Weekday())
	fmt.Fprintf(&b, "- **Week:** Week %02d of %d\n", week, now.Year())
	fmt.Fprintf(&b, "- **Month:** %s %d\n", now.Month(), now.Year())
	fmt.Fprintf(&b, "- **Last Updated:** %s\n\n", current)

	b.WriteString("## 📊 Project Status\n\n")
	b.WriteString("This project is actively maintained and updated daily.\n\n")

	b.WriteString("## 🚀 Recent Activity\n\n")
	fmt.Fprintf(&b, "- README updated automatically on %s\n", current)
	b.WriteString("- Project status: Active\n")
	b.WriteString("- Maintenance: Daily updates enabled\n\n")

	b.WriteString("## 📝 Update History\n\n")
	b.WriteString("| Date | Update Type | Description |\n")
	b.WriteString("|------|-------------|-------------|\n")
	fmt.Fprintf(&b, "| %s | Daily Update | README refreshed with current date and status |\n", current)
	fmt.Fprintf(&b, "| %s | Daily Update | Previous daily update |\n", previous)

	b.WriteString("\n## 🔧 Getting Started\n\n")
	b.WriteString("1. Clone this repository\n")
	b.WriteString("2. Check the daily updates above\n")
	b.WriteString("3. Start working on your project\n\n")

	b.WriteString("## 📈 Project Metrics\n\n")
	b.WriteString("- **Created:** Auto-generated\n")
	fmt.Fprintf(&b, "- **Last Modified:** %s\n", current)
	b.WriteString("- **Update Frequency:** Daily\n")
	b.WriteString("- **Status:** Active and maintained\n\n")

	b.WriteString("---\n\n")
	b.WriteString("*This README is automatically updated daily to keep project information current.*\n")
	fmt.Fprintf(&b, "*Last automated update: %s*\n", current)

	return b.String()
}

// CommitMessage is the message of the commit that writes the generated file.
func CommitMessage(now time.Time, mode model.RunMode) string {
	msg := "Daily README update - " + now.Format(timestampLayout)
	if mode == model.RunModeAutomatic {
		msg += " (Automated)"
	}
	return msg
}
