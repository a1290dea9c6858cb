package core

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"net/mail"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/huangsam/readiness/core/catalog"
	"github.com/huangsam/readiness/internal/contract"
	"github.com/huangsam/readiness/internal/outwriter"
	"github.com/huangsam/readiness/schema"
)

// backCommand moves the interactive session to the previous section.
const backCommand = "back"

// errInputClosed is returned when the terminal input ends mid questionnaire.
var errInputClosed = errors.New("input ended before the questionnaire was complete")

// ExecuteInteractive walks the respondent through the questionnaire on the
// terminal, then scores and prints the result like ExecuteAssess.
func ExecuteInteractive(ctx context.Context, cfg *contract.Config, mgr contract.StoreManager) error {
	session, err := RunInteractive(ctx, catalog.Default(), os.Stdin, os.Stdout, cfg.RespondentOverride)
	if err != nil {
		return err
	}

	start := time.Now()
	assessment, err := session.Score(scoreOptions(cfg))
	if err != nil {
		return err
	}
	recordHistory(mgr, cfg, start, session.Respondent(), assessment)
	return outwriter.NewOutWriter().WriteAssessment(assessment, session.Respondent(), cfg, time.Since(start))
}

// RunInteractive presents one section at a time and returns the submitted session.
// Known respondent fields are offered as defaults. Typing "back" returns to
// the previous section; an empty line keeps the current answer.
func RunInteractive(ctx context.Context, cat *catalog.Catalog, r io.Reader, w io.Writer, known schema.Respondent) (*Session, error) {
	s := NewSession(cat)
	s.SetRespondent(known)
	p := &prompter{scanner: bufio.NewScanner(r), w: w}

	for !s.Complete() {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		section := s.Current()
		p.printf("\n[%.0f%%] %s\n", s.Progress(), section.Title)

		var (
			back bool
			err  error
		)
		if section.ID == schema.UserInfoSection {
			back, err = p.askRespondent(s)
		} else {
			back, err = p.askSection(s, section)
		}
		if err != nil {
			return nil, err
		}
		if back {
			s.Prev()
			continue
		}
		if err := s.Next(); err != nil {
			p.printf("%v\n", err)
		}
	}
	return s, nil
}

// prompter reads answers line by line.
type prompter struct {
	scanner *bufio.Scanner
	w       io.Writer
}

func (p *prompter) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(p.w, format, args...)
}

// ask prints the prompt with its current value and returns the trimmed reply.
func (p *prompter) ask(prompt, current string) (string, error) {
	if current != "" {
		p.printf("%s [%s]: ", prompt, current)
	} else {
		p.printf("%s: ", prompt)
	}
	if !p.scanner.Scan() {
		if err := p.scanner.Err(); err != nil {
			return "", err
		}
		return "", errInputClosed
	}
	return strings.TrimSpace(p.scanner.Text()), nil
}

func (p *prompter) askRespondent(s *Session) (bool, error) {
	r := s.Respondent()
	fields := []struct {
		prompt string
		value  *string
	}{
		{"Name", &r.Name},
		{"Email", &r.Email},
		{"Company", &r.Company},
		{"Role", &r.Role},
	}
	for _, f := range fields {
		for {
			reply, err := p.ask(f.prompt, *f.value)
			if err != nil {
				return false, err
			}
			if reply == "" {
				reply = *f.value
			}
			if reply == "" {
				p.printf("%s is required\n", f.prompt)
				continue
			}
			if f.value == &r.Email {
				if _, err := mail.ParseAddress(reply); err != nil {
					p.printf("invalid email: %v\n", err)
					continue
				}
			}
			*f.value = reply
			break
		}
	}
	s.SetRespondent(r)
	return false, nil
}

func (p *prompter) askSection(s *Session, section schema.Section) (bool, error) {
	recorded := s.Answers()
	for i, q := range section.Questions {
		p.printf("\n(%d/%d) %s\n", i+1, len(section.Questions), q.Text)
		p.printf("      %s\n", answerHint(q))

		current := ""
		if v, ok := recorded[q.ID]; ok {
			current = fmt.Sprint(v)
		}
		for {
			reply, err := p.ask("Answer", current)
			if err != nil {
				return false, err
			}
			if strings.EqualFold(reply, backCommand) {
				return true, nil
			}
			if reply == "" {
				if current != "" {
					break
				}
				p.printf("an answer is required (or type %q)\n", backCommand)
				continue
			}
			if err := s.Answer(q.ID, choiceValue(q, reply)); err != nil {
				p.printf("%v\n", err)
				continue
			}
			break
		}
	}
	return false, nil
}

// answerHint lists the accepted answers of a question.
func answerHint(q schema.Question) string {
	if q.Kind == schema.ScaleQuestion {
		parts := make([]string, 0, q.ScaleMax-q.ScaleMin+1)
		for pos := q.ScaleMin; pos <= q.ScaleMax; pos++ {
			parts = append(parts, fmt.Sprintf("%d=%s", pos, q.ScaleLabels[pos]))
		}
		return strings.Join(parts, "  ")
	}
	parts := make([]string, len(q.Options))
	for i, option := range q.Options {
		parts[i] = fmt.Sprintf("%d) %s", i+1, option)
	}
	return strings.Join(parts, "  ")
}

// choiceValue lets a choice question be answered by the option number.
func choiceValue(q schema.Question, reply string) string {
	if q.Kind != schema.ChoiceQuestion {
		return reply
	}
	n, err := strconv.Atoi(reply)
	if err != nil || n < 1 || n > len(q.Options) {
		return reply
	}
	return q.Options[n-1]
}
