// Package parser turns the extracted text of one statement into an ordered
// list of transactions, driven entirely by an institution profile.
package parser

import (
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/ena-dev/ena/internal/categorize"
	"github.com/ena-dev/ena/internal/model"
	"github.com/ena-dev/ena/internal/preferences"
	"github.com/ena-dev/ena/internal/profile"
)

// Statement is the parsed result for one statement document.
type Statement struct {
	Institution    string
	Year           int
	OpeningBalance decimal.Decimal
	ClosingBalance decimal.Decimal
	// Transactions in textual scan order, not date order. Date sorting
	// happens at export across all of an institution's statements.
	Transactions []model.Transaction
}

// Parser parses statements for one institution.
type Parser struct {
	profile     *profile.Profile
	prefs       preferences.Preferences
	categorizer categorize.Categorizer
	log         zerolog.Logger
}

// New creates a Parser. The categorizer may be nil; it is only consulted
// when the use_inference preference is on.
func New(p *profile.Profile, prefs preferences.Preferences, c categorize.Categorizer, log zerolog.Logger) *Parser {
	return &Parser{profile: p, prefs: prefs, categorizer: c, log: log}
}

// embeddedAmount re-extracts a dollar figure that leaked into a description
// capture from a second statement column.
var embeddedAmount = regexp.MustCompile(`(?P<amount>-?\$[\d,]+\.\d{2}-?)(?P<cr>-|\s?CR)?`)

var fourDigits = regexp.MustCompile(`\d{4}`)

// Parse extracts the statement year, both balances and every transaction
// from the raw statement text. Lines that fail the transaction pattern are
// skipped; a missing year or balance is fatal.
func (p *Parser) Parse(text string) (*Statement, error) {
	year, err := p.startYear(text)
	if err != nil {
		return nil, err
	}
	opening, err := p.balance(text, p.profile.OpeningBal, "opening")
	if err != nil {
		return nil, err
	}
	closing, err := p.balance(text, p.profile.ClosingBal, "closing")
	if err != nil {
		return nil, err
	}

	stmt := &Statement{
		Institution:    p.profile.Name,
		Year:           year,
		OpeningBalance: opening,
		ClosingBalance: closing,
	}

	// Statements can span a December-to-January boundary; once a December
	// transaction has been seen, later January transactions belong to the
	// next year. The flag never resets within one statement.
	decemberSeen := false

	for _, m := range p.profile.Txn.FindAllStringSubmatch(text, -1) {
		dates := group(p.profile.Txn, m, "dates")
		desc := group(p.profile.Txn, m, "description")
		rawAmount := group(p.profile.Txn, m, "amount")
		cr := group(p.profile.Txn, m, "cr")

		date, err := p.parseDate(dates, year)
		if err != nil {
			return nil, err
		}
		if date.Month() == time.December && !decemberSeen {
			decemberSeen = true
		}
		if date.Month() == time.January && decemberSeen {
			date = date.AddDate(1, 0, 0)
		}

		if cr != "" {
			p.log.Info().Str("amount", rawAmount).Msg("credit marker found in transaction")
		}
		amount, err := parseMoney(rawAmount, cr)
		if err != nil {
			p.log.Warn().Str("amount", rawAmount).Err(err).Msg("skipping unparseable amount")
			continue
		}
		// Raw statement amounts are purchase-positive; internally spending
		// is negative.
		amount = amount.Neg()

		if p.profile.AmountInDescription && strings.Contains(desc, "$") {
			if em := embeddedAmount.FindStringSubmatch(desc); em != nil {
				p.log.Info().Str("description", desc).Msg("dollar amount found in description")
				replaced, err := parseMoney(group(embeddedAmount, em, "amount"), group(embeddedAmount, em, "cr"))
				if err == nil {
					amount = replaced.Neg()
					desc = desc[:strings.Index(desc, "$")]
				}
			}
		}

		if p.prefs.Convention == model.ExpensesPositive {
			amount = amount.Neg()
		}

		txn := model.Transaction{
			Date:   date,
			Amount: amount,
			Note:   strings.TrimSpace(desc),
		}

		income, err := p.profile.ClassifyIncome(txn, p.prefs.Convention)
		if err != nil {
			return nil, err
		}
		switch {
		case income:
			txn.Category = model.CategoryIncome
		case p.prefs.UseInference && p.categorizer != nil:
			txn.Category, err = p.categorizer.Categorize(txn)
			if err != nil {
				return nil, err
			}
		default:
			txn.Category = model.CategoryExpense
		}

		// Identical repeat purchases are kept, with a numbered note so
		// rows stay distinguishable in the export.
		if hasEqual(stmt.Transactions, txn) {
			base := txn.Note
			for n := 2; hasEqual(stmt.Transactions, txn); n++ {
				txn.Note = base + " " + strconv.Itoa(n)
			}
		}
		stmt.Transactions = append(stmt.Transactions, txn)
	}

	p.log.Debug().
		Int("transactions", len(stmt.Transactions)).
		Int("year", year).
		Str("opening", opening.StringFixed(2)).
		Str("closing", closing.StringFixed(2)).
		Msg("statement parsed")

	return stmt, nil
}

func (p *Parser) startYear(text string) (int, error) {
	m := p.profile.Year.FindStringSubmatch(text)
	if m == nil {
		return 0, &YearNotFoundError{Institution: p.profile.Name}
	}
	digits := fourDigits.FindString(group(p.profile.Year, m, "year"))
	if digits == "" {
		return 0, &YearNotFoundError{Institution: p.profile.Name}
	}
	return strconv.Atoi(digits)
}

func (p *Parser) balance(text string, re *regexp.Regexp, kind string) (decimal.Decimal, error) {
	m := re.FindStringSubmatch(text)
	if m == nil {
		return decimal.Decimal{}, &BalanceNotFoundError{Institution: p.profile.Name, Kind: kind}
	}
	bal, err := parseMoney(group(re, m, "balance"), group(re, m, "cr"))
	if err != nil {
		return decimal.Decimal{}, &BalanceNotFoundError{Institution: p.profile.Name, Kind: kind}
	}
	return bal, nil
}

// parseDate normalizes the captured date tokens: separators stripped,
// trailing dot removed, statement year appended. The month-name layout is
// tried before the numeric one.
func (p *Parser) parseDate(raw string, year int) (time.Time, error) {
	fields := strings.Fields(strings.ReplaceAll(raw, "/", " "))
	if len(fields) < 2 {
		return time.Time{}, &DateParseError{Institution: p.profile.Name, Raw: raw}
	}
	// Statements print month names in whatever case they like ("NOV",
	// "Nov."); time.Parse only accepts "Nov".
	mon := strings.TrimSuffix(fields[0], ".")
	if mon == "" {
		return time.Time{}, &DateParseError{Institution: p.profile.Name, Raw: raw}
	}
	mon = strings.ToUpper(mon[:1]) + strings.ToLower(mon[1:])
	joined := mon + " " + fields[1] + " " + strconv.Itoa(year)

	for _, layout := range []string{"Jan 2 2006", "1 2 2006"} {
		if t, err := time.Parse(layout, joined); err == nil {
			return t, nil
		}
	}
	return time.Time{}, &DateParseError{Institution: p.profile.Name, Raw: joined}
}

// parseMoney parses a currency-formatted amount. A trailing minus or a
// credit marker forces the value negative; an explicit leading minus is
// never doubled.
func parseMoney(raw, cr string) (decimal.Decimal, error) {
	s := strings.NewReplacer("$", "", ",", "", " ", "").Replace(raw)
	if strings.HasSuffix(s, "-") {
		s = "-" + strings.TrimSuffix(s, "-")
	}
	if cr != "" && !strings.HasPrefix(s, "-") {
		s = "-" + s
	}
	return decimal.NewFromString(s)
}

func hasEqual(txns []model.Transaction, txn model.Transaction) bool {
	for _, t := range txns {
		if t.Equal(txn) {
			return true
		}
	}
	return false
}

func group(re *regexp.Regexp, m []string, name string) string {
	i := re.SubexpIndex(name)
	if i < 0 || i >= len(m) {
		return ""
	}
	return m[i]
}
