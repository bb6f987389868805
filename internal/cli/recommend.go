package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/shpitdev/air-assist/internal/recommend"
	"github.com/shpitdev/air-assist/internal/render"
	"github.com/shpitdev/air-assist/internal/server/respond"
)

var (
	questionnaire recommend.Questionnaire
	recommendJSON bool
)

var recommendCmd = &cobra.Command{
	Use:   "recommend",
	Short: "Recommend homes, sights and food for one trip",
	Long: `Sends one questionnaire to the model and prints the recommendations.

Output is styled when stdout is a terminal and plain text otherwise. Use --json
for machine-readable output; failures are then printed as
{"error":{"code":"<kind>","message":"..."}}.`,
	Example: `  airassist recommend --destination Paris --arrival 2026-05-01 --departure 2026-05-06 \
    --civilization urban --purpose "museums and food" --budget "€2000"`,
	Args: cobra.NoArgs,
	RunE: runRecommend,
}

func init() {
	f := recommendCmd.Flags()
	f.StringVarP(&questionnaire.Destination, "destination", "d", "", "where you want to go")
	f.StringVar(&questionnaire.CivilizationType, "civilization", "", "rural, urban or suburban")
	f.StringVar(&questionnaire.ArrivalDate, "arrival", "", "arrival date (YYYY-MM-DD)")
	f.StringVar(&questionnaire.DepartureDate, "departure", "", "departure date (YYYY-MM-DD)")
	f.StringVar(&questionnaire.TravelPurpose, "purpose", "", "purpose of the trip")
	f.BoolVar(&questionnaire.WillingToTravelFar, "travel-far", false, "willing to travel far from where you stay")
	f.StringVar(&questionnaire.Budget, "budget", "", "budget, free text")
	f.BoolVar(&recommendJSON, "json", false, "output results as JSON")
	rootCmd.AddCommand(recommendCmd)
}

func runRecommend(cmd *cobra.Command, _ []string) error {
	p, err := newPipeline(cmd.Context())
	if err != nil {
		return err
	}

	res := await(cmd.ErrOrStderr(), p.Start(cmd.Context(), questionnaire.Answers()))

	out := cmd.OutOrStdout()
	if recommendJSON {
		return outputRecommendJSON(out, res)
	}

	r := render.New(out, isTerminal(out))
	if !res.OK() {
		if err := r.Error(res.Err); err != nil {
			return err
		}
		return silentFailure()
	}
	return r.Set(*res.Set)
}

func outputRecommendJSON(w io.Writer, res recommend.Result) error {
	var payload any = res.Set
	if !res.OK() {
		payload = respond.ErrorResponse{Error: respond.ErrorBody{
			Code:    string(res.Err.Kind),
			Message: res.Err.Message,
		}}
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal results: %w", err)
	}
	if _, err := fmt.Fprintln(w, string(data)); err != nil {
		return err
	}
	if !res.OK() {
		return silentFailure()
	}
	return nil
}

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// await blocks for the single result on ch, animating a loading line on w when it
// is a terminal.
func await(w io.Writer, ch <-chan recommend.Result) recommend.Result {
	if !isTerminal(w) {
		return <-ch
	}

	t := time.NewTicker(100 * time.Millisecond)
	defer t.Stop()
	for i := 0; ; i++ {
		select {
		case res := <-ch:
			_, _ = fmt.Fprint(w, "\r\033[K")
			return res
		case <-t.C:
			_, _ = fmt.Fprintf(w, "\r%s Loading your trip plan...", spinnerFrames[i%len(spinnerFrames)])
		}
	}
}

func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && render.IsTerminal(f)
}
