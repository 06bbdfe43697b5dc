package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/Avinash-006/UniChat/internal/cli/client"
)

// Out is where every printer writes.
var Out io.Writer = os.Stdout

// JSON prints v as indented JSON.
func JSON(v interface{}) {
	enc := json.NewEncoder(Out)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func newTable() *tabwriter.Writer {
	return tabwriter.NewWriter(Out, 0, 0, 2, ' ', 0)
}

// GroupTable prints the groups a user belongs to.
func GroupTable(groups []client.Group) {
	if len(groups) == 0 {
		fmt.Fprintln(Out, "No groups found.")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "ID\tNAME\tMEMBERS\tCREATED")
	for _, g := range groups {
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", g.ID, g.Name, memberList(g.Usernames), RelativeTime(g.CreatedAt))
	}
	w.Flush()
}

func memberList(names []string) string {
	const shown = 3
	if len(names) <= shown {
		return strings.Join(names, ", ")
	}
	return fmt.Sprintf("%s +%d", strings.Join(names[:shown], ", "), len(names)-shown)
}

// MessageTable prints a group's history, oldest first.
func MessageTable(messages []client.Message) {
	if len(messages) == 0 {
		fmt.Fprintln(Out, "No messages yet.")
		return
	}

	w := newTable()
	fmt.Fprintln(w, "TIME\tFROM\tTYPE\tCONTENT")
	for _, m := range messages {
		kind := m.Type
		if kind == "" {
			kind = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", RelativeTime(m.Timestamp), m.SenderUsername, kind, m.Content)
	}
	w.Flush()
}

// FileTable prints file summaries. The GROUP column only appears when at
// least one entry came from a group share.
func FileTable(files []client.FileSummary) {
	if len(files) == 0 {
		fmt.Fprintln(Out, "No files found.")
		return
	}

	withGroup := false
	for _, f := range files {
		if f.GroupName != "" {
			withGroup = true
			break
		}
	}

	w := newTable()
	if withGroup {
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tFAV\tGROUP")
	} else {
		fmt.Fprintln(w, "ID\tNAME\tTYPE\tFAV")
	}
	for _, f := range files {
		fav := "-"
		if f.IsFavourite {
			fav = "*"
		}
		if withGroup {
			fmt.Fprintf(w, "%d\t%s\t%s\t%s\t%s\n", f.ID, f.FileName, shortMIME(f.FileType), fav, f.GroupName)
			continue
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%s\n", f.ID, f.FileName, shortMIME(f.FileType), fav)
	}
	w.Flush()
}

// FileDetail prints an uploaded file's record.
func FileDetail(f client.File) {
	w := newTable()
	fmt.Fprintf(w, "Name:\t%s\n", f.FileName)
	fmt.Fprintf(w, "ID:\t%d\n", f.ID)
	fmt.Fprintf(w, "Type:\t%s\n", f.FileType)
	fmt.Fprintf(w, "Size:\t%s\n", FormatSize(f.Size))
	fmt.Fprintf(w, "Favourite:\t%v\n", f.IsFavourite)
	fmt.Fprintf(w, "Owner ID:\t%d\n", f.UserID)
	fmt.Fprintf(w, "Created:\t%s\n", f.CreatedAt.Format(time.RFC3339))
	w.Flush()
}

// UserInfo prints user details.
func UserInfo(u client.User) {
	w := newTable()
	fmt.Fprintf(w, "Username:\t%s\n", u.Username)
	fmt.Fprintf(w, "Email:\t%s\n", u.Email)
	fmt.Fprintf(w, "ID:\t%d\n", u.ID)
	w.Flush()
}

// FormatSize converts bytes to a human-readable string.
func FormatSize(b int64) string {
	const unit = 1024
	if b < unit {
		return fmt.Sprintf("%d B", b)
	}
	div, exp := int64(unit), 0
	for n := b / unit; n >= unit; n /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(b)/float64(div), "KMGTPE"[exp])
}

// RelativeTime formats a timestamp relative to now (e.g. "2h ago").
func RelativeTime(t time.Time) string {
	if t.IsZero() {
		return "-"
	}
	d := time.Since(t)
	switch {
	case d < time.Minute:
		return "just now"
	case d < time.Hour:
		return fmt.Sprintf("%dm ago", int(d.Minutes()))
	case d < 24*time.Hour:
		return fmt.Sprintf("%dh ago", int(d.Hours()))
	case d < 30*24*time.Hour:
		return fmt.Sprintf("%dd ago", int(d.Hours()/24))
	default:
		return t.Format("2006-01-02")
	}
}

// shortMIME turns "application/pdf" into "pdf".
func shortMIME(mime string) string {
	if i := strings.Index(mime, ";"); i >= 0 {
		mime = mime[:i]
	}
	parts := strings.Split(mime, "/")
	if len(parts) != 2 {
		return mime
	}
	s := parts[1]
	if idx := strings.LastIndex(s, "."); idx >= 0 {
		s = s[idx+1:]
	}
	return s
}
