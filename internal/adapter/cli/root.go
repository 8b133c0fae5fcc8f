package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/mwestbrook/genstudio/internal/domain"
	"github.com/mwestbrook/genstudio/internal/genai"
)

// Studio defines the generation tasks the CLI drives.
type Studio interface {
	RewritePrompt(ctx context.Context, prompt string) (string, error)
	ExtractRoomNames(ctx context.Context, floorPlanURI string) (domain.RoomList, error)
	DescribeImage(ctx context.Context, imageURI string) (string, error)
	DescribeVideo(ctx context.Context, videoURI string) (string, error)
	AnalyzeAudio(ctx context.Context, audioURI, originalPrompt string) (domain.AudioAnalysis, error)
	ImageCritique(ctx context.Context, prompt string, imageURIs []string) (string, error)
	CritiqueQuestions(ctx context.Context, prompt string) (domain.CritiqueQuestionList, error)
	EvaluateMedia(ctx context.Context, mediaURI string, questions []domain.CritiqueQuestion) (domain.EvaluationResult, error)
	TransformationPrompts(ctx context.Context, imageURIs []string) (domain.TransformationPrompts, error)
	EvaluateTTS(ctx context.Context, audioURI, text, directions string) (domain.TTSEvaluation, error)
	GenerateImages(ctx context.Context, prompt string, referenceURIs []string, folder string) (domain.ImageGenerationResult, error)
}

// StatsProvider reads aggregated call analytics.
type StatsProvider interface {
	TaskStats(ctx context.Context) ([]domain.TaskStats, error)
}

// ReportWriter persists a session report and returns its location.
type ReportWriter interface {
	Write(ctx context.Context, report domain.SessionReport) (string, error)
}

// Arguments encapsulates IO writers injected from the host process.
type Arguments struct {
	OutWriter io.Writer
	ErrWriter io.Writer
}

// Dependencies captures the collaborators for the CLI.
type Dependencies struct {
	Studio    Studio
	Stats     StatsProvider
	Report    ReportWriter
	Args      Arguments
	Model     string
	OutputDir string
	Version   string
}

// NewRootCommand constructs the root Cobra command.
func NewRootCommand(deps Dependencies) *cobra.Command {
	versionString := deps.Version
	if versionString == "" {
		versionString = "v0.0.0"
	}

	root := &cobra.Command{
		Use:     "genstudio",
		Short:   "Multimodal generation studio CLI",
		Version: versionString,
	}
	root.SilenceUsage = true
	root.SilenceErrors = true

	out := deps.Args.OutWriter
	if out != nil {
		root.SetOut(out)
	}
	if deps.Args.ErrWriter != nil {
		root.SetErr(deps.Args.ErrWriter)
	}

	root.AddCommand(
		newRewriteCommand(deps),
		newRoomsCommand(deps),
		newDescribeCommand(deps),
		newCritiqueCommand(deps),
		newTransformCommand(deps),
		newEvaluateCommand(deps),
		newAnalyzeAudioCommand(deps),
		newEvaluateTTSCommand(deps),
		newGenerateCommand(deps),
		newStatsCommand(deps),
	)

	return root
}

func newRewriteCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "rewrite <prompt>",
		Short: "Rewrite a generation prompt to be more vivid and specific",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			rewritten, err := deps.Studio.RewritePrompt(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), rewritten)
			return nil
		},
	}
}

func newRoomsCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "rooms <floor-plan-uri>",
		Short: "Extract labeled room names from a floor plan image",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			list, err := deps.Studio.ExtractRoomNames(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			for _, room := range list.Rooms {
				fmt.Fprintln(cmd.OutOrStdout(), room.RoomName)
			}
			return nil
		},
	}
}

func newDescribeCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "describe <media-uri>",
		Short: "Describe an image or video in two sentences",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			uri := args[0]
			var description string
			var err error
			if genai.InferMediaKind(uri) == genai.KindVideo {
				description, err = deps.Studio.DescribeVideo(cmd.Context(), uri)
			} else {
				description, err = deps.Studio.DescribeImage(cmd.Context(), uri)
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), description)
			return nil
		},
	}
}

func newCritiqueCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "critique <prompt> <image-uri>...",
		Short: "Critique generated images against the prompt that produced them",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			critique, err := deps.Studio.ImageCritique(cmd.Context(), args[0], args[1:])
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), critique)
			return nil
		},
	}
}

func newTransformCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "transform <image-uri>...",
		Short: "Suggest three transformations for a set of images",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prompts, err := deps.Studio.TransformationPrompts(cmd.Context(), args)
			if err != nil {
				return err
			}
			for _, transformation := range prompts.Transformations {
				fmt.Fprintf(cmd.OutOrStdout(), "%s: %s\n", transformation.Title, transformation.Prompt)
			}
			return nil
		},
	}
}

func newEvaluateCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "evaluate <prompt> <media-uri>",
		Short: "Generate critique questions from a prompt and answer them for the media",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			questions, err := deps.Studio.CritiqueQuestions(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			result, err := deps.Studio.EvaluateMedia(cmd.Context(), args[1], questions.Questions)
			if err != nil {
				return err
			}
			for _, answer := range result.Answers {
				verdict := "no"
				if answer.Answer {
					verdict = "yes"
				}
				fmt.Fprintf(cmd.OutOrStdout(), "%s %s\n", answer.Question, verdict)
			}
			return nil
		},
	}
}

func newAnalyzeAudioCommand(deps Dependencies) *cobra.Command {
	var originalPrompt string

	cmd := &cobra.Command{
		Use:   "analyze-audio <audio-uri>",
		Short: "Critique a generated music clip against its prompt",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			analysis, err := deps.Studio.AnalyzeAudio(cmd.Context(), args[0], originalPrompt)
			if err != nil {
				return err
			}
			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(analysis)
		},
	}
	cmd.Flags().StringVar(&originalPrompt, "prompt", "", "prompt the clip was generated from")
	return cmd
}

func newEvaluateTTSCommand(deps Dependencies) *cobra.Command {
	var text, directions string

	cmd := &cobra.Command{
		Use:   "evaluate-tts <audio-uri>",
		Short: "Score a synthesized speech clip",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			eval, err := deps.Studio.EvaluateTTS(cmd.Context(), args[0], text, directions)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "score: %d\n%s\n", eval.QualityScore, eval.Justification)
			for _, tag := range eval.KeyTags {
				fmt.Fprintf(cmd.OutOrStdout(), "- %s\n", tag)
			}
			return nil
		},
	}
	cmd.Flags().StringVar(&text, "text", "", "text that was converted to speech")
	cmd.Flags().StringVar(&directions, "directions", "", "delivery directions used for generation")
	return cmd
}

func newGenerateCommand(deps Dependencies) *cobra.Command {
	var (
		referenceURIs []string
		rewrite       bool
		report        bool
		folder        string
	)

	cmd := &cobra.Command{
		Use:   "generate <prompt>",
		Short: "Generate images, persist the artifacts, and optionally write a report",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			prompt := args[0]

			finalPrompt := prompt
			if rewrite {
				rewritten, err := deps.Studio.RewritePrompt(ctx, prompt)
				if err != nil {
					return err
				}
				finalPrompt = rewritten
			}

			sessionFolder := folder
			if sessionFolder == "" {
				sessionFolder = time.Now().UTC().Format("20060102T150405Z")
			}

			result, err := deps.Studio.GenerateImages(ctx, finalPrompt, referenceURIs, sessionFolder)
			if err != nil {
				return err
			}

			for _, image := range result.Images {
				fmt.Fprintln(cmd.OutOrStdout(), image.Locator)
				if image.Caption != "" {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s\n", image.Caption)
				}
			}

			if report && deps.Report != nil {
				path, err := deps.Report.Write(ctx, domain.SessionReport{
					OutputDir:       deps.OutputDir,
					Model:           deps.Model,
					Prompt:          prompt,
					RewrittenPrompt: finalPrompt,
					Images:          result.Images,
					Grounding:       result.Grounding,
					Elapsed:         result.Elapsed,
				})
				if err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "report: %s\n", path)
			}
			return nil
		},
	}
	cmd.Flags().StringSliceVar(&referenceURIs, "ref", nil, "reference image URIs sent ahead of the prompt")
	cmd.Flags().BoolVar(&rewrite, "rewrite", false, "rewrite the prompt before generating")
	cmd.Flags().BoolVar(&report, "report", false, "write a markdown session report")
	cmd.Flags().StringVar(&folder, "folder", "", "artifact folder name (defaults to a timestamp)")
	return cmd
}

func newStatsCommand(deps Dependencies) *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show aggregated call analytics per task",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if deps.Stats == nil {
				return fmt.Errorf("analytics store is disabled")
			}
			stats, err := deps.Stats.TaskStats(cmd.Context())
			if err != nil {
				return err
			}
			if len(stats) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "no calls recorded")
				return nil
			}
			for _, row := range stats {
				fmt.Fprintf(cmd.OutOrStdout(), "%-24s calls=%-4d failures=%-4d elapsed=%s\n",
					row.Task, row.Calls, row.Failures, row.TotalElapsed.Round(time.Millisecond))
			}
			return nil
		},
	}
}
