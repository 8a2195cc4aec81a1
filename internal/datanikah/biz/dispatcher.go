package biz

import (
	"context"
	"fmt"
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/kart-io/logger"
	"golang.org/x/sync/errgroup"

	"github.com/kart-io/datanikah/internal/datanikah/store"
	"github.com/kart-io/datanikah/internal/model"
)

// Intent identifiers, in dispatch priority order.
const (
	IntentName        = "name"
	IntentCertificate = "certificate"
	IntentYear        = "year"
	IntentOffice      = "office"
	IntentDate        = "date"
	IntentNone        = ""
)

// Result caps per intent.
const (
	nameLimit        = 10
	certificateLimit = 5
	officeLimit      = 15
	dateLimit        = 20
)

// Reply is the assistant's answer to one message.
type Reply struct {
	Intent  string
	Text    string
	Records []*model.MarriageRecord
	Stats   *model.YearSummary
}

type handlerFunc func(ctx context.Context, param string) (*Reply, error)

// intent is a static routing rule. The first intent whose keyword occurs in
// the message owns it, whether or not a pattern then captures.
type intent struct {
	name     string
	keywords []string
	patterns []*regexp.Regexp
	prompt   string
	handle   handlerFunc
}

// matches reports whether a keyword occurs at the start of a word of
// normalized, so "akta" hits "aktanikah" but not "fakta".
func (in *intent) matches(normalized string) bool {
	for _, k := range in.keywords {
		if strings.Contains(normalized, " "+k) {
			return true
		}
	}
	return false
}

var nonWord = regexp.MustCompile(`[^\p{L}\p{N}]+`)

// normalizeMessage lower-cases message, turns punctuation runs into single
// spaces and pads it with a leading space.
func normalizeMessage(message string) string {
	return " " + strings.TrimSpace(nonWord.ReplaceAllString(strings.ToLower(message), " ")) + " "
}

// nameTail ends a captured name before a trailing place or time qualifier,
// as in "nama Ahmad di KUA Kota Selatan".
const nameTail = `(.+?)(?:\s+(?:di|dari|pada|tahun|tanggal|tgl)\b.*)?$`

func (in *intent) extract(message string) (string, bool) {
	for _, p := range in.patterns {
		m := p.FindStringSubmatch(message)
		if len(m) < 2 {
			continue
		}
		if param := strings.TrimRight(strings.TrimSpace(m[1]), "?.!, "); param != "" {
			return param, true
		}
	}
	return "", false
}

// Dispatcher routes free text to one of the record lookups.
type Dispatcher struct {
	records store.RecordStore
	region  string
	intents []*intent
}

// NewDispatcher creates a Dispatcher over records. region only decorates
// the yearly statistics answer.
func NewDispatcher(records store.RecordStore, region string) *Dispatcher {
	d := &Dispatcher{records: records, region: region}
	d.intents = []*intent{
		{
			name:     IntentName,
			keywords: []string{"nama", "suami", "istri"},
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\batas\s+nama\s+` + nameTail),
				regexp.MustCompile(`(?i)\bnama\s+(?:suami\s+|istri\s+)?` + nameTail),
				regexp.MustCompile(`(?i)\b(?:suami|istri)\s+` + nameTail),
			},
			prompt: promptName,
			handle: d.searchByName,
		},
		{
			name:     IntentCertificate,
			keywords: []string{"akta"},
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\b(?:nomor|no\.?)\s*akta(?:\s+nikah)?\s*[:#]?\s*([A-Za-z0-9./-]*\d[A-Za-z0-9./-]*)`),
				regexp.MustCompile(`(?i)\bakta(?:\s+nikah)?\s*[:#]?\s*([A-Za-z0-9./-]*\d[A-Za-z0-9./-]*)`),
			},
			prompt: promptCertificate,
			handle: d.searchByCertificate,
		},
		{
			name:     IntentYear,
			keywords: []string{"tahun", "statistik", "jumlah", "berapa"},
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)(?:tahun|statistik|jumlah)\s*(\d{4})\b`),
				regexp.MustCompile(`\b((?:19|20)\d{2})\b`),
			},
			prompt: promptYear,
			handle: d.yearlyStats,
		},
		{
			name:     IntentOffice,
			keywords: []string{"kua", "kantor urusan agama"},
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bkantor\s+urusan\s+agama\s+(.+)$`),
				regexp.MustCompile(`(?i)\bkua\s+(.+)$`),
			},
			prompt: promptOffice,
			handle: d.searchByOffice,
		},
		{
			name:     IntentDate,
			keywords: []string{"tanggal", "tgl"},
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`\b(\d{1,2}[-/.]\d{1,2}[-/.]\d{4})\b`),
				regexp.MustCompile(`\b(\d{4}-\d{1,2}-\d{1,2})\b`),
			},
			prompt: promptDate,
			handle: d.searchByDate,
		},
		{
			// "cari <nama>" 在其他关键词均未命中时按姓名查询
			name:     IntentName,
			keywords: []string{"cari"},
			patterns: []*regexp.Regexp{
				regexp.MustCompile(`(?i)\bcari\s+(?:data\s+(?:nikah\s+|pernikahan\s+)?)?` + nameTail),
			},
			prompt: promptName,
			handle: d.searchByName,
		},
	}
	return d
}

// Dispatch answers message. It never fails: store errors are logged and
// answered with ErrorText.
func (d *Dispatcher) Dispatch(ctx context.Context, message string) *Reply {
	normalized := normalizeMessage(message)

	for _, in := range d.intents {
		if !in.matches(normalized) {
			continue
		}

		param, ok := in.extract(message)
		if !ok {
			return &Reply{Intent: in.name, Text: in.prompt}
		}

		reply, err := in.handle(ctx, param)
		if err != nil {
			logger.Errorw("chat intent failed",
				"intent", in.name,
				"param", param,
				"error", err.Error(),
			)
			return &Reply{Intent: in.name, Text: ErrorText}
		}
		reply.Intent = in.name
		return reply
	}

	return &Reply{Intent: IntentNone, Text: FallbackText}
}

func (d *Dispatcher) searchByName(ctx context.Context, name string) (*Reply, error) {
	var husbands, wives []*model.MarriageRecord

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		husbands, err = d.records.Find(gctx, store.Query{
			Filters: store.Prefix(store.FieldSearchNamaSuami, name),
			Limit:   nameLimit,
		})
		return err
	})
	g.Go(func() error {
		var err error
		wives, err = d.records.Find(gctx, store.Query{
			Filters: store.Prefix(store.FieldSearchNamaIstri, name),
			Limit:   nameLimit,
		})
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	results := mergeUnique(husbands, wives)
	if len(results) == 0 {
		return &Reply{Text: fmt.Sprintf(nameNotFound, name)}, nil
	}
	return &Reply{Text: fmt.Sprintf(nameFound, len(results), name), Records: results}, nil
}

func (d *Dispatcher) searchByCertificate(ctx context.Context, number string) (*Reply, error) {
	results, err := d.records.Find(ctx, store.Query{
		Filters: store.Prefix(store.FieldSearchNoAktanikah, number),
		Limit:   certificateLimit,
	})
	if err != nil {
		return nil, err
	}
	if len(results) == 0 {
		return &Reply{Text: fmt.Sprintf(certificateMissing, number)}, nil
	}
	return &Reply{Text: fmt.Sprintf(certificateFound, len(results), number), Records: results}, nil
}

func (d *Dispatcher) yearlyStats(ctx context.Context, param string) (*Reply, error) {
	year, err := strconv.Atoi(param)
	if err != nil {
		return &Reply{Text: promptYear}, nil
	}

	summary, err := YearlySummary(ctx, d.records, year)
	if err != nil {
		return nil, err
	}
	if summary.Total == 0 {
		return &Reply{Text: fmt.Sprintf(yearNotFound, year), Stats: summary}, nil
	}

	text := fmt.Sprintf(yearStats, year, summary.Total, summary.PerMonth, summary.PerDay)
	if d.region != "" {
		text += fmt.Sprintf(yearCoverage, d.region)
	}
	return &Reply{Text: text, Stats: summary}, nil
}

// YearlySummary counts the ceremonies of year and derives the averages.
func YearlySummary(ctx context.Context, records store.RecordStore, year int) (*model.YearSummary, error) {
	n, err := records.Count(ctx, yearRange(year)...)
	if err != nil {
		return nil, err
	}

	days := time.Date(year+1, time.January, 1, 0, 0, 0, 0, time.UTC).
		Sub(time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)).Hours() / 24

	return &model.YearSummary{
		Year:     year,
		Total:    n,
		PerMonth: int64(math.Round(float64(n) / 12)),
		PerDay:   math.Round(float64(n)/days*100) / 100,
	}, nil
}

// yearRange selects TanggalAkad within [YYYY-01-01, YYYY+1-01-01).
func yearRange(year int) []store.Filter {
	return []store.Filter{
		{Field: store.FieldTanggalAkad, Op: store.OpGte, Value: fmt.Sprintf("%04d-01-01", year)},
		{Field: store.FieldTanggalAkad, Op: store.OpLt, Value: fmt.Sprintf("%04d-01-01", year+1)},
	}
}

func (d *Dispatcher) searchByOffice(ctx context.Context, office string) (*Reply, error) {
	terms := []string{office}
	if !strings.HasPrefix(strings.ToUpper(office), "KUA") {
		// Offices are stored as "KUA <name>" while users often drop the prefix.
		terms = append(terms, "KUA "+office)
	}

	var found [][]*model.MarriageRecord
	for _, term := range terms {
		results, err := d.records.Find(ctx, store.Query{
			Filters: store.Prefix(store.FieldSearchNamaKUA, term),
			SortBy:  store.FieldCreatedAt,
			Desc:    true,
			Limit:   officeLimit,
		})
		if err != nil {
			return nil, err
		}
		found = append(found, results)
	}

	results := mergeUnique(found...)
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].CreatedAt.After(results[j].CreatedAt)
	})
	if len(results) > officeLimit {
		results = results[:officeLimit]
	}

	if len(results) == 0 {
		return &Reply{Text: fmt.Sprintf(officeNotFound, office)}, nil
	}
	return &Reply{Text: fmt.Sprintf(officeFound, len(results), office), Records: results}, nil
}

func (d *Dispatcher) searchByDate(ctx context.Context, param string) (*Reply, error) {
	normalized := FormatDate(toDayMonthYear(param))
	if normalized == "" {
		return &Reply{Text: promptDate}, nil
	}

	results, err := d.records.Find(ctx, store.Query{
		Filters: []store.Filter{store.Eq(store.FieldTanggalAkad, normalized)},
		Limit:   dateLimit,
	})
	if err != nil {
		return nil, err
	}

	display := normalized[8:10] + "-" + normalized[5:7] + "-" + normalized[0:4]
	if len(results) == 0 {
		return &Reply{Text: fmt.Sprintf(dateNotFound, display)}, nil
	}
	return &Reply{Text: fmt.Sprintf(dateFound, len(results), display), Records: results}, nil
}

// toDayMonthYear rewrites "15/03/2024", "15.03.2024" and "2024-03-15" to "15-03-2024".
func toDayMonthYear(s string) string {
	s = strings.NewReplacer("/", "-", ".", "-").Replace(s)
	parts := strings.Split(s, "-")
	if len(parts) == 3 && len(parts[0]) == 4 {
		return parts[2] + "-" + parts[1] + "-" + parts[0]
	}
	return s
}

// mergeUnique concatenates lists keeping the first occurrence of each record ID.
func mergeUnique(lists ...[]*model.MarriageRecord) []*model.MarriageRecord {
	seen := make(map[string]struct{})
	out := make([]*model.MarriageRecord, 0)
	for _, list := range lists {
		for _, r := range list {
			key := r.IDHex()
			if _, ok := seen[key]; ok && key != "" {
				continue
			}
			seen[key] = struct{}{}
			out = append(out, r)
		}
	}
	return out
}
