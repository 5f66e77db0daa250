package cmd

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/inajphotography/visionboard/internal/brief"
	"github.com/inajphotography/visionboard/internal/gallery"
	"github.com/inajphotography/visionboard/internal/models"
	"github.com/inajphotography/visionboard/internal/wizard"
	"github.com/spf13/cobra"
)

func newWizardCmd() *cobra.Command {
	var serverURL string

	cmd := &cobra.Command{
		Use:   "wizard",
		Short: "Walk through the vision board wizard in the terminal",
		Long: `Walk through the same steps a website visitor does: browse and pick
4 to 8 photos, add captions, answer the intention questions and submit
your details to a running visionboard server.`,
		Example: `  # Submit to a local server
  visionboard wizard --server http://localhost:3000`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := gallery.Default()
			if err != nil {
				return err
			}

			tw := &terminalWizard{
				in:        bufio.NewScanner(cmd.InOrStdin()),
				out:       cmd.OutOrStdout(),
				catalog:   catalog,
				submitter: wizard.NewHTTPSubmitter(serverURL),
				state:     wizard.New(),
			}
			return tw.run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&serverURL, "server", "http://localhost:3000", "Base URL of the visionboard server")

	return cmd
}

type terminalWizard struct {
	in        *bufio.Scanner
	out       io.Writer
	catalog   *gallery.Catalog
	submitter wizard.Submitter
	state     wizard.State
}

// errQuit ends the session without submitting
var errQuit = errors.New("wizard cancelled")

func (t *terminalWizard) run(ctx context.Context) error {
	for !t.state.Finished() {
		var err error
		switch t.state.Step {
		case wizard.StepWelcome:
			err = t.welcome()
		case wizard.StepBrowse:
			err = t.browse()
		case wizard.StepIntentions:
			err = t.intentions()
		case wizard.StepContact:
			err = t.contact(ctx)
		case wizard.StepPreview:
			err = t.preview()
		}
		if errors.Is(err, errQuit) {
			fmt.Fprintln(t.out, "Goodbye.")
			return nil
		}
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(t.out, "\nThank you! Your vision board is on its way to your inbox.")
	return nil
}

func (t *terminalWizard) prompt(label string) (string, error) {
	fmt.Fprint(t.out, label)
	if !t.in.Scan() {
		if err := t.in.Err(); err != nil {
			return "", err
		}
		return "", errQuit
	}
	return strings.TrimSpace(t.in.Text()), nil
}

func (t *terminalWizard) next() {
	s, err := wizard.Next(t.state)
	if err != nil {
		fmt.Fprintf(t.out, "  %v\n", err)
		return
	}
	t.state = s
}

func (t *terminalWizard) back() {
	s, err := wizard.Back(t.state)
	if err != nil {
		fmt.Fprintf(t.out, "  %v\n", err)
		return
	}
	t.state = s
}

func (t *terminalWizard) welcome() error {
	fmt.Fprintln(t.out, "Your Emotional Vision Board")
	fmt.Fprintln(t.out, "Choose the photos that feel like your dog and we'll turn them into a personalised board.")
	if _, err := t.prompt("\nPress Enter to begin... "); err != nil {
		return err
	}
	t.next()
	return nil
}

const browseHelp = `Commands:
  <n>                 toggle image n
  a <n> <caption>     caption a selected image
  f <dimension> <v>   toggle a filter (mood, setting, style)
  c                   clear filters
  n / b / q           next, back, quit`

func (t *terminalWizard) browse() error {
	visible := wizard.Visible(t.state, t.catalog)

	fmt.Fprintf(t.out, "\nBrowse (%d/%d selected)", len(t.state.Selections), models.MaxSelections)
	if f := t.state.Filters; f != (gallery.Filters{}) {
		fmt.Fprintf(t.out, "  filters: mood=%q setting=%q style=%q", f.Mood, f.Setting, f.Style)
	}
	fmt.Fprintln(t.out)
	for i, img := range visible {
		mark := " "
		if t.state.IsSelected(img.ID) {
			mark = "*"
		}
		fmt.Fprintf(t.out, " %s %2d. %-28s %s · %s · %s\n", mark, i+1, img.Filename, img.Mood, img.Setting, img.Style)
	}
	fmt.Fprintln(t.out, browseHelp)

	line, err := t.prompt("> ")
	if err != nil {
		return err
	}
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return nil
	}

	switch fields[0] {
	case "q":
		return errQuit
	case "n":
		t.next()
	case "b":
		t.back()
	case "c":
		t.state = wizard.ClearFilters(t.state)
	case "f":
		if len(fields) < 3 {
			fmt.Fprintln(t.out, "  usage: f <mood|setting|style> <value>")
			return nil
		}
		d, err := gallery.ParseDimension(fields[1])
		if err != nil {
			fmt.Fprintf(t.out, "  %v\n", err)
			return nil
		}
		t.state = wizard.SetFilter(t.state, d, strings.Join(fields[2:], " "))
	case "a":
		if len(fields) < 3 {
			fmt.Fprintln(t.out, "  usage: a <n> <caption>")
			return nil
		}
		img, ok := pick(visible, fields[1])
		if !ok || !t.state.IsSelected(img.ID) {
			fmt.Fprintln(t.out, "  select the image before captioning it")
			return nil
		}
		t.state = wizard.SetAnnotation(t.state, img.ID, strings.Join(fields[2:], " "))
	default:
		img, ok := pick(visible, fields[0])
		if !ok {
			fmt.Fprintln(t.out, "  unknown command")
			return nil
		}
		wasSelected := t.state.IsSelected(img.ID)
		t.state = wizard.ToggleSelection(t.state, img)
		if !wasSelected && !t.state.IsSelected(img.ID) {
			fmt.Fprintf(t.out, "  you can pick at most %d images\n", models.MaxSelections)
		}
	}
	return nil
}

func pick(images []models.Image, arg string) (models.Image, bool) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 || n > len(images) {
		return models.Image{}, false
	}
	return images[n-1], true
}

func (t *terminalWizard) intentions() error {
	fmt.Fprintln(t.out, "\nWhat matters most? Answer at least one (Enter keeps the current answer, '-' clears it).")
	for i, question := range models.IntentionPrompts {
		current := t.state.Intentions[i]
		label := question + "\n> "
		if current != "" {
			label = fmt.Sprintf("%s [%s]\n> ", question, current)
		}
		answer, err := t.prompt(label)
		if err != nil {
			return err
		}
		switch answer {
		case "":
		case "-":
			t.state = wizard.SetIntention(t.state, i, "")
		default:
			t.state = wizard.SetIntention(t.state, i, answer)
		}
	}

	choice, err := t.prompt("Continue? [Y/b/q] ")
	if err != nil {
		return err
	}
	switch strings.ToLower(choice) {
	case "q":
		return errQuit
	case "b":
		t.back()
	default:
		t.next()
	}
	return nil
}

func (t *terminalWizard) contact(ctx context.Context) error {
	fmt.Fprintln(t.out, "\nOne last step: where should we send your board?")
	if t.state.SubmitError != "" {
		fmt.Fprintf(t.out, "  %s\n", t.state.SubmitError)
	}

	name, err := t.prompt("Your name: ")
	if err != nil {
		return err
	}
	if name == "b" {
		t.back()
		return nil
	}
	email, err := t.prompt("Your email: ")
	if err != nil {
		return err
	}
	t.state = wizard.SetContact(t.state, name, email)

	fmt.Fprintln(t.out, "Creating your vision board...")
	s, err := wizard.Submit(ctx, t.state, t.submitter)
	t.state = s
	if err != nil {
		var submitErr *wizard.SubmitError
		if errors.Is(err, wizard.ErrInvalidContact) || errors.As(err, &submitErr) {
			fmt.Fprintf(t.out, "  %v\n", err)
			return nil
		}
		return err
	}
	return nil
}

func (t *terminalWizard) preview() error {
	fmt.Fprintf(t.out, "\nYour vision board, %s\n", t.state.Contact.Name)
	for _, sel := range t.state.Selections {
		fmt.Fprintf(t.out, "  - %s (%s · %s · %s)\n", sel.Filename, sel.Mood, sel.Setting, sel.Style)
		if sel.Annotation != "" {
			fmt.Fprintf(t.out, "      “%s”\n", sel.Annotation)
		}
	}
	for _, a := range t.state.Intentions.Answers() {
		fmt.Fprintf(t.out, "  %s\n    ♥ %s\n", a.Prompt, a.Answer)
	}
	fmt.Fprintf(t.out, "\n%s\n", brief.Compute(t.state.Selections).Sentence())

	if _, err := t.prompt("\nPress Enter to finish... "); err != nil && !errors.Is(err, errQuit) {
		return err
	}
	t.next()
	return nil
}
