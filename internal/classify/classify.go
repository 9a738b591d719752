// Package classify turns GHunt's free-form output into a record.
//
// Classification is lossy: every line is tested against an ordered rule
// list and the first rule that matches wins. A line that matches nothing is
// kept in the raw output and otherwise ignored, so a change in GHunt's
// wording silently drops the field instead of failing the investigation.
package classify

import (
	"strings"
	"time"

	"github.com/dkoosis/goosint/internal/record"
)

// Section is the logical block of GHunt output a line belongs to.
type Section string

const (
	SectionNone          Section = ""
	SectionGoogleAccount Section = "google_account"
	SectionGoogleChat    Section = "google_chat"
	SectionGooglePlus    Section = "google_plus"
	SectionPlayGames     Section = "play_games"
	SectionMaps          Section = "maps"
	SectionCalendar      Section = "calendar"
	SectionYouTube       Section = "youtube"
)

// ListSection is the section whose "- " items are activated services.
const ListSection = SectionGooglePlus

// sectionMarkers are matched on label text so the emoji prefix is optional.
var sectionMarkers = []struct {
	marker  string
	section Section
}{
	{"Google Account data", SectionGoogleAccount},
	{"Google Chat Extended Data", SectionGoogleChat},
	{"Google Plus Extended Data", SectionGooglePlus},
	{"Play Games data", SectionPlayGames},
	{"Maps data", SectionMaps},
	{"Calendar data", SectionCalendar},
	{"YouTube data", SectionYouTube},
}

// rule is one (predicate, extractor) pair.
type rule struct {
	name  string
	match func(line string, section Section) bool
	apply func(r *record.Record, line string)
}

func contains(marker string) func(string, Section) bool {
	return func(line string, _ Section) bool { return strings.Contains(line, marker) }
}

// after returns the trimmed text following the first occurrence of marker.
func after(line, marker string) string {
	_, rest, _ := strings.Cut(line, marker)
	return strings.TrimSpace(rest)
}

func field(marker string, set func(r *record.Record, v string)) rule {
	return rule{
		name:  marker,
		match: contains(marker),
		apply: func(r *record.Record, line string) { set(r, after(line, marker)) },
	}
}

// rules run in priority order. Order matters: "Profile page :" must not be
// reached by a line that already matched "Email :".
var rules = []rule{
	field("Email :", func(r *record.Record, v string) { r.Profile.Email = v }),
	field("Gaia ID :", func(r *record.Record, v string) { r.Profile.GaiaID = v }),
	field("Last profile edit :", func(r *record.Record, v string) { r.Profile.LastEdit = v }),
	{
		name:  "=> https://",
		match: func(line string, _ Section) bool { return strings.HasPrefix(line, "=> https://") },
		apply: func(r *record.Record, line string) { r.Profile.ProfilePicture = strings.ReplaceAll(line, "=> ", "") },
	},
	field("Profile page :", func(r *record.Record, v string) { r.Services.MapsProfile = v }),
	field("Entity Type :", func(r *record.Record, v string) { r.Services.ChatEntityType = v }),
	field("Customer ID :", func(r *record.Record, v string) { r.Services.ChatCustomerID = v }),
	field("Entreprise User :", func(r *record.Record, v string) { r.Services.EnterpriseUser = v }),
	{
		name: "[+] Activated Google services",
		match: func(line string, _ Section) bool {
			return strings.HasPrefix(line, "[+]") && strings.Contains(line, "Activated Google services")
		},
		apply: func(r *record.Record, _ string) { r.Services.ActivatedServices = []string{} },
	},
	{
		name:  "- item",
		match: func(line string, s Section) bool { return strings.HasPrefix(line, "- ") && s == ListSection },
		apply: func(r *record.Record, line string) {
			r.Services.ActivatedServices = append(r.Services.ActivatedServices, line[2:])
		},
	},
	field("Reviews :", func(r *record.Record, v string) { r.Services.MapsReviews = v }),
	field("Photos :", func(r *record.Record, v string) { r.Services.MapsPhotos = v }),
	field("Answers :", func(r *record.Record, v string) { r.Services.MapsAnswers = v }),
}

// Classifier consumes lines one at a time and builds a record.
type Classifier struct {
	section Section
	rec     record.Record
}

// New starts a classifier for email with the record stamped at now.
func New(email string, now time.Time) *Classifier {
	return &Classifier{rec: record.New(email, now)}
}

// Feed classifies one line. The line is stored verbatim in the raw output.
func (c *Classifier) Feed(line string) {
	c.rec.RawOutput = append(c.rec.RawOutput, line)

	line = strings.TrimSpace(line)
	if line == "" {
		return
	}

	for _, m := range sectionMarkers {
		if strings.Contains(line, m.marker) {
			c.section = m.section
			break
		}
	}

	for _, r := range rules {
		if r.match(line, c.section) {
			r.apply(&c.rec, line)
			return
		}
	}
}

// Section reports the current section tag.
func (c *Classifier) Section() Section {
	return c.section
}

// Record returns the record built so far.
func (c *Classifier) Record() record.Record {
	return c.rec
}

// Classify runs every line through a fresh classifier.
func Classify(lines []string, email string, now time.Time) record.Record {
	c := New(email, now)
	for _, line := range lines {
		c.Feed(line)
	}
	return c.Record()
}
