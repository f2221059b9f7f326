package http

import (
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/anthlasserre/perf-tracker-api/internal/match"
	"github.com/charmbracelet/log"
)

// pushEnvelope is the wrapper Google Pub/Sub wraps around pushed messages.
// The payload itself is base64-encoded MessagePack.
type pushEnvelope struct {
	Subscription string `json:"subscription"`
	Message      struct {
		Data string `json:"data"`
	} `json:"message"`
}

// decodePushRecord unwraps a Pub/Sub push request into a match record.
func (s *Server) decodePushRecord(w http.ResponseWriter, r *http.Request) (*match.Record, bool) {
	bodyBytes, err := io.ReadAll(r.Body)
	if err != nil {
		log.Error("Failed to read request body", "error", err)
		http.Error(w, "Failed to read request body", http.StatusInternalServerError)
		return nil, false
	}
	log.Debug("Received pubsub push message", "body", string(bodyBytes))

	var envelope pushEnvelope
	if err := json.Unmarshal(bodyBytes, &envelope); err != nil {
		log.Error("Failed to unmarshal wrapper JSON", "error", err)
		http.Error(w, "Invalid JSON", http.StatusBadRequest)
		return nil, false
	}

	rawData, err := base64.StdEncoding.DecodeString(envelope.Message.Data)
	if err != nil {
		log.Error("Failed to decode base64 data", "error", err)
		http.Error(w, "Invalid base64 data", http.StatusBadRequest)
		return nil, false
	}

	rec := match.Record{}
	if err := s.pubsub.ProcessMessage(rawData, &rec); err != nil {
		log.Error("Failed to decode message payload", "error", err)
		http.Error(w, "Invalid message payload", http.StatusBadRequest)
		return nil, false
	}
	return &rec, true
}

func (s *Server) NotifyMatchHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.decodePushRecord(w, r)
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendMatchRecorded(rec, isDryRun); err != nil {
			log.Error("Failed to notify match recorded", "error", err, "recordID", rec.ID)
			http.Error(w, "Failed to notify match recorded", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) NotifyVideoHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		rec, ok := s.decodePushRecord(w, r)
		if !ok {
			return
		}
		isDryRun := isDryRunFromContext(r)
		if err := s.Notifier.SendVideoUploaded(rec, isDryRun); err != nil {
			log.Error("Failed to notify video uploaded", "error", err, "recordID", rec.ID)
			http.Error(w, "Failed to notify video uploaded", http.StatusInternalServerError)
			return
		}
		w.Write([]byte("OK"))
	}
}

func (s *Server) ProcessRecordsHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		log.Info("Starting record processing...")
		isDryRun := isDryRunFromContext(r)

		s.Processor.ProcessRecords(isDryRun)

		w.WriteHeader(http.StatusOK)
		fmt.Fprintln(w, "Record processing completed.")
		log.Info("Record processing finished.")
	}
}
