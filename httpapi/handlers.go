package httpapi

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/kbukum/pktchain/descriptor"
	apperrors "github.com/kbukum/pktchain/errors"
	"github.com/kbukum/pktchain/filter"
	"github.com/kbukum/pktchain/logger"
	"github.com/kbukum/pktchain/observability"
	"github.com/kbukum/pktchain/packet"
	"github.com/kbukum/pktchain/pipeline"
	"github.com/kbukum/pktchain/sse"
	"github.com/kbukum/pktchain/version"
)

// Packet encodings.
const (
	EncodingText   = "text"
	EncodingBase64 = "base64"
)

// RunRequest is the body of a run.
type RunRequest struct {
	// Descriptor is ignored by /v1/chains/:name/run.
	Descriptor string   `json:"descriptor"`
	Packets    []string `json:"packets"`
	Encoding   string   `json:"encoding" binding:"omitempty,oneof=text base64"`
}

// RunResponse carries the produced packets in the request's encoding.
type RunResponse struct {
	RunID      string   `json:"run_id"`
	Descriptor string   `json:"descriptor"`
	Encoding   string   `json:"encoding"`
	Packets    []string `json:"packets"`
}

// ChainInfo describes a catalog chain.
type ChainInfo struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Descriptor  string `json:"descriptor"`
}

func (s *Server) health(c *gin.Context) {
	h := observability.NewServiceHealth("pktchain", version.Get().String())
	h.AddComponent(observability.ComponentUp("registry", "kinds", strconv.Itoa(len(s.reg.List()))))
	if s.catalog != nil {
		h.AddComponent(observability.ComponentUp("catalog", "chains", strconv.Itoa(len(s.catalog.Chains))))
	}
	c.JSON(h.HTTPStatus(), h)
}

func (s *Server) listFilters(c *gin.Context) {
	RespondOK(c, gin.H{"filters": s.reg.Kinds()})
}

func (s *Server) listChains(c *gin.Context) {
	chains := []ChainInfo{}
	if s.catalog != nil {
		for _, name := range s.catalog.Names() {
			desc, err := s.catalog.Descriptor(name)
			if err != nil {
				RespondWithError(c, err)
				return
			}
			chains = append(chains, ChainInfo{
				Name:        name,
				Description: s.catalog.Chains[name].Description,
				Descriptor:  desc,
			})
		}
	}
	RespondOK(c, gin.H{"chains": chains})
}

func (s *Server) run(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}
	s.execute(c, req.Descriptor, req)
}

func (s *Server) runNamed(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}
	if s.catalog == nil {
		RespondWithError(c, apperrors.NotFound("chain", c.Param("name")))
		return
	}
	desc, err := s.catalog.Descriptor(c.Param("name"))
	if err != nil {
		RespondWithError(c, err)
		return
	}
	s.execute(c, desc, req)
}

// runPlan is a built chain with its decoded inputs.
type runPlan struct {
	id       string
	desc     string
	encoding string
	inputs   []*packet.Packet
	chain    *filter.Chain
	log      *logger.Logger
	start    time.Time
}

// prepare validates req and builds a fresh chain for desc.
func (s *Server) prepare(ctx context.Context, c *gin.Context, desc string, req RunRequest) (*runPlan, error) {
	p := &runPlan{
		id:       uuid.NewString(),
		desc:     desc,
		encoding: req.Encoding,
		start:    time.Now(),
	}
	if p.encoding == "" {
		p.encoding = EncodingText
	}
	observability.SetSpanAttribute(ctx, observability.AttrRunID, p.id)
	observability.SetSpanAttribute(ctx, observability.AttrDescriptor, desc)

	if s.cfg.MaxPackets > 0 && len(req.Packets) > s.cfg.MaxPackets {
		return p, apperrors.InvalidInput("packets", fmt.Sprintf("at most %d packets per run", s.cfg.MaxPackets))
	}
	inputs, err := decodePackets(req.Packets, p.encoding)
	if err != nil {
		return p, err
	}
	p.inputs = inputs

	p.log = s.log.WithFields(logger.Fields(
		logger.FieldRunID, p.id,
		logger.FieldRequestID, c.GetString(ctxRequestID),
	))
	opts := []descriptor.BuildOption{descriptor.WithLogger(p.log)}
	if s.metrics != nil {
		opts = append(opts, descriptor.WithMetrics(ctx, s.metrics))
	}

	buildCtx, span := observability.StartSpan(ctx, observability.SpanChainBuild)
	defer span.End()
	p.chain, err = descriptor.Build(desc, s.reg, opts...)
	if err != nil {
		observability.SetSpanError(buildCtx, err)
	} else {
		observability.SetSpanAttribute(buildCtx, observability.AttrStage, len(p.chain.Stages()))
	}
	return p, err
}

// finish records the outcome of a run on its span and metrics.
func (s *Server) finish(ctx context.Context, p *runPlan, produced int, err error) {
	status := "ok"
	if err != nil {
		status = "error"
		observability.SetSpanError(ctx, err)
	} else {
		observability.SetSpanAttribute(ctx, observability.AttrPackets, produced)
	}
	observability.SetSpanAttribute(ctx, observability.AttrStatus, status)
	if s.metrics != nil {
		s.metrics.RecordRun(ctx, status, time.Since(p.start))
	}
	if err == nil && p.log != nil {
		p.log.Info("run completed", logger.Fields(
			logger.FieldDescriptor, p.desc,
			logger.FieldPackets, produced,
			logger.FieldDuration, time.Since(p.start).Milliseconds(),
		))
	}
}

func (s *Server) execute(c *gin.Context, desc string, req RunRequest) {
	ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanChainRun)
	defer span.End()

	p, err := s.prepare(ctx, c, desc, req)
	if err != nil {
		s.finish(ctx, p, 0, err)
		RespondWithError(c, err)
		return
	}
	out, err := filter.Process(p.chain, p.inputs)
	s.finish(ctx, p, len(out), err)
	if err != nil {
		RespondWithError(c, err)
		return
	}

	RespondOK(c, RunResponse{
		RunID:      p.id,
		Descriptor: desc,
		Encoding:   p.encoding,
		Packets:    encodePackets(out, p.encoding),
	})
}

// StreamPacket is the data of a packet event.
type StreamPacket struct {
	Index int    `json:"index"`
	Data  string `json:"data"`
}

// runStream runs like run but sends each output packet as a Server-Sent
// Event as soon as the chain produces it. Errors found before the chain
// starts are plain JSON responses; later ones end the stream with an error
// event.
func (s *Server) runStream(c *gin.Context) {
	var req RunRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondWithError(c, apperrors.InvalidInput("body", err.Error()))
		return
	}

	ctx, span := observability.StartSpan(c.Request.Context(), observability.SpanChainRun)
	defer span.End()

	p, err := s.prepare(ctx, c, req.Descriptor, req)
	if err != nil {
		s.finish(ctx, p, 0, err)
		RespondWithError(c, err)
		return
	}
	sw, err := sse.NewWriter(c.Writer)
	if err != nil {
		RespondWithError(c, apperrors.Internal(err))
		return
	}
	c.Status(http.StatusOK)

	if err := sw.Send(sse.EventStarted, gin.H{"run_id": p.id, "descriptor": p.desc}); err != nil {
		s.finish(ctx, p, 0, err)
		return
	}

	n := 0
	out := pipeline.Map(pipeline.Apply(pipeline.FromSlice(p.inputs), p.chain),
		func(_ context.Context, pkt *packet.Packet) (StreamPacket, error) {
			sp := StreamPacket{Index: n, Data: encodePacket(pkt, p.encoding)}
			n++
			return sp, nil
		})
	err = pipeline.ForEach(ctx, out, func(_ context.Context, sp StreamPacket) error {
		return sw.Send(sse.EventPacket, sp)
	})
	s.finish(ctx, p, n, err)
	if err != nil {
		appErr, ok := apperrors.AsAppError(err)
		if !ok {
			appErr = apperrors.Internal(err)
		}
		_ = sw.Send(sse.EventError, appErr.ToResponse())
		return
	}
	_ = sw.Send(sse.EventDone, gin.H{"run_id": p.id, "packets": n})
}

func decodePackets(in []string, encoding string) ([]*packet.Packet, error) {
	out := make([]*packet.Packet, len(in))
	for i, s := range in {
		if encoding == EncodingText {
			out[i] = packet.FromString(s)
			continue
		}
		data, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return nil, apperrors.InvalidInput("packets", fmt.Sprintf("packet %d is not valid base64", i)).WithCause(err)
		}
		out[i] = packet.New(data)
	}
	return out, nil
}

func encodePackets(in []*packet.Packet, encoding string) []string {
	out := make([]string, len(in))
	for i, p := range in {
		out[i] = encodePacket(p, encoding)
	}
	return out
}

func encodePacket(p *packet.Packet, encoding string) string {
	if encoding == EncodingText {
		return p.String()
	}
	return base64.StdEncoding.EncodeToString(p.Bytes())
}
