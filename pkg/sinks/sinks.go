package sinks

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"
)

const (
	// Supported sink types.
	TypeHTTP   = "http"
	TypeSQS    = "sqs"
	TypeSNS    = "sns"
	TypePubSub = "pubsub"

	httpDefaultMethod         = "POST"
	httpDefaultTimeoutSeconds = 5
)

// ErrInvalidConfig is wrapped by every sinks file validation error.
var ErrInvalidConfig = errors.New("invalid sink config")

// File is a parsed sinks file. Each entry receives the show and hide events of
// every notification.
type File struct {
	Sinks []SinkConfig `json:"sinks" yaml:"sinks"`
}

// SinkConfig is one downstream destination. Exactly the block matching Type is read.
type SinkConfig struct {
	ID      string            `json:"id" yaml:"id"`
	Type    string            `json:"type" yaml:"type"`
	Enabled *bool             `json:"enabled" yaml:"enabled"`
	HTTP    *HTTPSinkConfig   `json:"http" yaml:"http"`
	SQS     *SQSSinkConfig    `json:"sqs" yaml:"sqs"`
	SNS     *SNSSinkConfig    `json:"sns" yaml:"sns"`
	PubSub  *PubSubSinkConfig `json:"pubsub" yaml:"pubsub"`
}

// HTTPSinkConfig posts events as JSON to a webhook.
type HTTPSinkConfig struct {
	URL            string            `json:"url" yaml:"url"`
	Method         string            `json:"method" yaml:"method"`
	Headers        map[string]string `json:"headers" yaml:"headers"`
	TimeoutSeconds int               `json:"timeout_seconds" yaml:"timeout_seconds"`
}

// AWSCredentials are optional static credentials; the default chain is used when empty.
type AWSCredentials struct {
	AccessKeyID     string `json:"access_key_id" yaml:"access_key_id"`
	SecretAccessKey string `json:"secret_access_key" yaml:"secret_access_key"`
	SessionToken    string `json:"session_token" yaml:"session_token"`
}

// SQSSinkConfig enqueues events on an SQS queue.
type SQSSinkConfig struct {
	QueueURL    string          `json:"uri" yaml:"uri"`
	Region      string          `json:"region" yaml:"region"`
	Credentials *AWSCredentials `json:"credentials" yaml:"credentials"`
}

// SNSSinkConfig publishes events to an SNS topic.
type SNSSinkConfig struct {
	TopicARN    string          `json:"topic_arn" yaml:"topic_arn"`
	Region      string          `json:"region" yaml:"region"`
	Credentials *AWSCredentials `json:"credentials" yaml:"credentials"`
}

// PubSubSinkConfig publishes events to a Google Cloud Pub/Sub topic.
type PubSubSinkConfig struct {
	ProjectID       string `json:"project_id" yaml:"project_id"`
	Topic           string `json:"topic" yaml:"topic"`
	CredentialsFile string `json:"credentials_file" yaml:"credentials_file"`
	Endpoint        string `json:"endpoint" yaml:"endpoint"`
}

// LoadFile reads and checks a sinks file. A .json file is decoded as JSON,
// anything else as YAML. Unknown keys are rejected so a misspelled block does
// not silently drop a destination.
func LoadFile(path string) (*File, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, errors.New("sinks file path is empty")
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read sinks file: %w", err)
	}

	f, err := decodeFile(raw, strings.ToLower(filepath.Ext(path)))
	if err != nil {
		return nil, fmt.Errorf("decode sinks file %s: %w", filepath.Base(path), err)
	}
	if err := f.check(); err != nil {
		return nil, err
	}
	return f, nil
}

func decodeFile(raw []byte, ext string) (*File, error) {
	var f File
	if ext == ".json" {
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&f); err != nil {
			return nil, err
		}
		return &f, nil
	}

	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

func (f *File) check() error {
	seen := make(map[string]int, len(f.Sinks))
	for i := range f.Sinks {
		sc := &f.Sinks[i]
		sc.normalize()
		if err := sc.validate(); err != nil {
			return fmt.Errorf("sinks[%d]: %w", i, err)
		}
		if prev, dup := seen[sc.ID]; dup {
			return fmt.Errorf("%w: sinks[%d] reuses id %q from sinks[%d]; events are tagged by sink id", ErrInvalidConfig, i, sc.ID, prev)
		}
		seen[sc.ID] = i
	}
	return nil
}

// Enabled returns the sinks that should receive notification events, in file order.
func (f *File) Enabled() []SinkConfig {
	if f == nil {
		return nil
	}
	var out []SinkConfig
	for _, sc := range f.Sinks {
		if sc.Enabled == nil || *sc.Enabled {
			out = append(out, sc)
		}
	}
	return out
}

func (sc *SinkConfig) normalize() {
	sc.ID = strings.TrimSpace(sc.ID)
	sc.Type = strings.ToLower(strings.TrimSpace(sc.Type))
	if sc.HTTP != nil {
		sc.HTTP.normalize()
	}
	if sc.SQS != nil {
		sc.SQS.QueueURL = strings.TrimSpace(sc.SQS.QueueURL)
		sc.SQS.Region = strings.TrimSpace(sc.SQS.Region)
	}
	if sc.SNS != nil {
		sc.SNS.TopicARN = strings.TrimSpace(sc.SNS.TopicARN)
		sc.SNS.Region = strings.TrimSpace(sc.SNS.Region)
	}
	if sc.PubSub != nil {
		p := sc.PubSub
		p.ProjectID = strings.TrimSpace(p.ProjectID)
		p.Topic = strings.TrimSpace(p.Topic)
		p.CredentialsFile = strings.TrimSpace(p.CredentialsFile)
		p.Endpoint = strings.TrimSpace(p.Endpoint)
	}
}

func (h *HTTPSinkConfig) normalize() {
	h.URL = strings.TrimSpace(h.URL)
	h.Method = strings.ToUpper(strings.TrimSpace(h.Method))
	if h.Method == "" {
		h.Method = httpDefaultMethod
	}
	if h.TimeoutSeconds <= 0 {
		h.TimeoutSeconds = httpDefaultTimeoutSeconds
	}

	headers := make(map[string]string, len(h.Headers))
	for k, v := range h.Headers {
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if k != "" && v != "" {
			headers[k] = v
		}
	}
	h.Headers = nil
	if len(headers) > 0 {
		h.Headers = headers
	}
}

func (sc *SinkConfig) validate() error {
	if sc.ID == "" {
		return fmt.Errorf("%w: sink without id", ErrInvalidConfig)
	}

	var missing []string
	switch sc.Type {
	case TypeHTTP:
		switch {
		case sc.HTTP == nil:
			missing = []string{"http"}
		case sc.HTTP.URL == "":
			missing = []string{"http.url"}
		}
	case TypeSQS:
		if sc.SQS == nil {
			missing = []string{"sqs"}
			break
		}
		missing = blank(map[string]string{"sqs.uri": sc.SQS.QueueURL, "sqs.region": sc.SQS.Region})
	case TypeSNS:
		if sc.SNS == nil {
			missing = []string{"sns"}
			break
		}
		missing = blank(map[string]string{"sns.topic_arn": sc.SNS.TopicARN, "sns.region": sc.SNS.Region})
	case TypePubSub:
		if sc.PubSub == nil {
			missing = []string{"pubsub"}
			break
		}
		missing = blank(map[string]string{"pubsub.project_id": sc.PubSub.ProjectID, "pubsub.topic": sc.PubSub.Topic})
	case "":
		return fmt.Errorf("%w: sink %q has no type", ErrInvalidConfig, sc.ID)
	default:
		return fmt.Errorf("%w: sink %q has unsupported type %q (want http, sqs, sns or pubsub)", ErrInvalidConfig, sc.ID, sc.Type)
	}

	if len(missing) > 0 {
		return fmt.Errorf("%w: %s sink %q cannot deliver notification events without %s",
			ErrInvalidConfig, sc.Type, sc.ID, strings.Join(missing, ", "))
	}
	return nil
}

// blank returns the sorted names whose values are empty.
func blank(fields map[string]string) []string {
	var out []string
	for name, v := range fields {
		if v == "" {
			out = append(out, name)
		}
	}
	slices.Sort(out)
	return out
}
