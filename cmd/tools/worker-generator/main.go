// cmd/tools/worker-generator/main.go
package main

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"text/template"
	"time"

	"github.com/spf13/cobra"

	"assessment-workers/internal/common/validation"
	"assessment-workers/pkg/registry"
)

// WorkerData holds data for templates
type WorkerData struct {
	Name        string
	PackageName string
	TaskType    string
	Category    string
	Description string
	Timeout     string
	InputFields []Field
}

type Field struct {
	Name    string
	Type    string
	JSONTag string
	Comment string
}

// goType maps JSON schema types to Go types
func goType(p validation.Property) string {
	switch p.Type {
	case "string":
		return "string"
	case "number":
		return "float64"
	case "integer":
		return "int"
	case "boolean":
		return "bool"
	case "object":
		return "map[string]interface{}"
	case "array":
		return "[]interface{}"
	default:
		return "interface{}"
	}
}

func upperFirst(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// inputFields lists schema properties in name order so output is stable.
func inputFields(schema validation.JSONSchema) []Field {
	names := make([]string, 0, len(schema.Properties))
	for name := range schema.Properties {
		names = append(names, name)
	}
	sort.Strings(names)

	fields := make([]Field, 0, len(names))
	for _, name := range names {
		p := schema.Properties[name]
		fields = append(fields, Field{
			Name:    upperFirst(name),
			Type:    goType(p),
			JSONTag: fmt.Sprintf("`json:%q`", name),
			Comment: p.Description,
		})
	}
	return fields
}

// timeoutExpr renders a registry timeout such as "10s" as Go source.
func timeoutExpr(timeout string) string {
	d, err := time.ParseDuration(timeout)
	if err != nil || d <= 0 {
		return "10 * time.Second"
	}
	if d%time.Second == 0 {
		return fmt.Sprintf("%d * time.Second", d/time.Second)
	}
	return fmt.Sprintf("%d * time.Millisecond", d/time.Millisecond)
}

func newWorkerData(a registry.Activity) WorkerData {
	return WorkerData{
		Name:        a.DisplayName,
		PackageName: strings.ReplaceAll(a.TaskType, "-", ""),
		TaskType:    a.TaskType,
		Category:    a.Category,
		Description: a.Description,
		Timeout:     timeoutExpr(a.Timeout),
		InputFields: inputFields(a.InputSchema),
	}
}

const configTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/config.go
package {{ .PackageName }}

import (
	"time"

	"assessment-workers/internal/common/validation"
	"assessment-workers/pkg/registry"
)

type Config struct {
	Timeout     time.Duration
	InputSchema validation.JSONSchema
}

func DefaultConfig() *Config {
	return &Config{
		Timeout:     {{ .Timeout }},
		InputSchema: registry.Default().InputSchema(TaskType),
	}
}
`

const modelsTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/models.go
package {{ .PackageName }}

type Input struct {
{{- range .InputFields }}
	{{ .Name }} {{ .Type }} {{ .JSONTag }}{{ if .Comment }} // {{ .Comment }}{{ end }}
{{- end }}
}

// Output is sent as the job's completion variables.
type Output struct {
	Processed bool ` + "`json:\"processed\"`" + `
}
`

const handlerTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler.go
package {{ .PackageName }}

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"

	"assessment-workers/internal/common/camunda"
	"assessment-workers/internal/common/errors"
	"assessment-workers/internal/common/logger"
	"assessment-workers/internal/common/metrics"
	"assessment-workers/internal/common/validation"
)

const TaskType = "{{ .TaskType }}"

// Handler serves {{ .TaskType }} jobs. {{ .Description }}
type Handler struct {
	config       *Config
	errorHandler *errors.ErrorHandler
	logger       logger.Logger
}

func NewHandler(config *Config, log logger.Logger) *Handler {
	if config == nil {
		config = DefaultConfig()
	}
	log = log.WithFields(map[string]interface{}{"taskType": TaskType})
	return &Handler{
		config:       config,
		errorHandler: errors.NewErrorHandler(log),
		logger:       log,
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	start := time.Now()
	metrics.WorkerJobsActive.WithLabelValues(TaskType).Inc()
	defer metrics.WorkerJobsActive.WithLabelValues(TaskType).Dec()

	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	output, err := h.run(ctx, job)
	if err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	if err := camunda.CompleteJob(ctx, client, job, output); err != nil {
		metrics.WorkerJobsFailed.WithLabelValues(TaskType, string(errors.AsStandardError(err).Code)).Inc()
		h.errorHandler.HandleJobError(ctx, client, job, err)
		return
	}

	metrics.WorkerJobsCompleted.WithLabelValues(TaskType).Inc()
	metrics.WorkerJobDuration.WithLabelValues(TaskType).Observe(time.Since(start).Seconds())
}

func (h *Handler) run(ctx context.Context, job entities.Job) (*Output, error) {
	if _, err := validation.ValidateVariables(job.Variables, h.config.InputSchema); err != nil {
		return nil, err
	}
	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		return nil, errors.NewInvalidInputSchemaError(fmt.Sprintf("decode variables: %v", err))
	}
	return h.Execute(ctx, &input)
}

func (h *Handler) Execute(_ context.Context, _ *Input) (*Output, error) {
	return &Output{Processed: true}, nil
}
`

const testTemplate = `// internal/workers/{{ .Category }}/{{ .TaskType }}/handler_test.go
package {{ .PackageName }}

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"assessment-workers/internal/common/logger"
)

func TestHandler_Execute(t *testing.T) {
	h := NewHandler(nil, logger.NewTestLogger(t))

	out, err := h.Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.True(t, out.Processed)
}
`

var templates = map[string]string{
	"config.go":       configTemplate,
	"models.go":       modelsTemplate,
	"handler.go":      handlerTemplate,
	"handler_test.go": testTemplate,
}

// generate renders every template into outDir/<category>/<taskType>. Existing
// files are left alone unless force is set.
func generate(data WorkerData, outDir string, force bool) ([]string, error) {
	dir := filepath.Join(outDir, data.Category, data.TaskType)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create directory: %w", err)
	}

	names := make([]string, 0, len(templates))
	for name := range templates {
		names = append(names, name)
	}
	sort.Strings(names)

	var written []string
	for _, name := range names {
		path := filepath.Join(dir, name)
		if _, err := os.Stat(path); err == nil && !force {
			return written, fmt.Errorf("%s already exists (use --force to overwrite)", path)
		}

		tmpl, err := template.New(name).Parse(templates[name])
		if err != nil {
			return written, fmt.Errorf("parse template %s: %w", name, err)
		}
		var buf bytes.Buffer
		if err := tmpl.Execute(&buf, data); err != nil {
			return written, fmt.Errorf("render %s: %w", name, err)
		}
		if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written = append(written, path)
	}
	return written, nil
}

func newRootCmd() *cobra.Command {
	var (
		taskType, registryPath, outDir string
		force                          bool
	)

	cmd := &cobra.Command{
		Use:   "worker-generator",
		Short: "Scaffold a job worker package from its registry entry",
		Long: `Generates config.go, models.go, handler.go and handler_test.go for an
activity, laid out as internal/workers/<category>/<task-type>.

Examples:
  worker-generator --task-type lookup-region --out /tmp/workers
  worker-generator --task-type send-report --registry configs/activity-registry.json`,
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			reg := registry.Default()
			if registryPath != "" {
				loaded, err := registry.LoadRegistry(registryPath)
				if err != nil {
					return err
				}
				reg = loaded
			}

			activity, ok := reg.Find(taskType)
			if !ok {
				return fmt.Errorf("task type %s is not in the registry", taskType)
			}
			if activity.Category == "" {
				return fmt.Errorf("activity %s has no category", taskType)
			}

			written, err := generate(newWorkerData(activity), outDir, force)
			for _, path := range written {
				fmt.Fprintf(cmd.OutOrStdout(), "Generated %s\n", path)
			}
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&taskType, "task-type", "", "task type to scaffold")
	f.StringVar(&registryPath, "registry", "", "registry file (default: built-in registry)")
	f.StringVar(&outDir, "out", "internal/workers", "workers root directory")
	f.BoolVar(&force, "force", false, "overwrite existing files")
	_ = cmd.MarkFlagRequired("task-type")
	return cmd
}

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}
