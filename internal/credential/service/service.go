// Package service orchestrates the credential lifecycle: fan-out proof
// building, composition, bundling, persistence, best-effort ledger
// registration, and verification.
package service

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"selo/internal/credential/bundler"
	"selo/internal/credential/models"
	"selo/internal/credential/store"
	"selo/internal/credential/tracer"
	"selo/internal/ledger"
	"selo/internal/platform/device"
	"selo/internal/platform/metrics"
	"selo/internal/platform/middleware"
	id "selo/pkg/domain"
	dErrors "selo/pkg/domain-errors"
	"selo/pkg/platform/audit"
	"selo/pkg/platform/breaker"
	"selo/pkg/platform/middleware/requesttime"
)

// GenerateRequest is one generation session: a wallet, the extracted document,
// and the holder's field selection.
type GenerateRequest struct {
	Wallet    id.WalletAddress
	Document  models.DocumentFieldSet
	Selection models.FieldSelection
}

// FieldFailure reports one field that could not be turned into a credential.
// Partial success is a valid session outcome; failures ride alongside the
// bundle instead of replacing it.
type FieldFailure struct {
	Field   models.Field `json:"field"`
	Code    dErrors.Code `json:"code"`
	Message string       `json:"message"`
}

// GenerateResult is the outcome of one generation session.
type GenerateResult struct {
	Bundle   models.CredentialBundle `json:"bundle"`
	Failures []FieldFailure          `json:"failures,omitempty"`
}

// Service coordinates the credential bounded context.
type Service struct {
	builder   ProofBuilder
	composer  CredentialComposer
	verifier  CredentialVerifier
	store     CredentialStore
	registrar LedgerRegistrar
	ledgerCB  *breaker.Breaker
	auditor   AuditPublisher
	metrics   *metrics.Metrics
	logger    *slog.Logger
	tracer    tracer.Tracer
}

// Option configures the Service.
type Option func(*Service)

// WithRegistrar configures the best-effort ledger registrar.
func WithRegistrar(r LedgerRegistrar) Option {
	return func(s *Service) {
		s.registrar = r
	}
}

// WithAuditor configures an audit publisher for the service.
func WithAuditor(a AuditPublisher) Option {
	return func(s *Service) {
		s.auditor = a
	}
}

// WithMetrics configures Prometheus metrics for the service.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithLogger configures a logger for the service.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) {
		s.logger = logger
	}
}

// WithTracer configures a tracer for the service.
func WithTracer(t tracer.Tracer) Option {
	return func(s *Service) {
		s.tracer = t
	}
}

// New creates the credential service with its required collaborators.
func New(builder ProofBuilder, composer CredentialComposer, verifier CredentialVerifier, credStore CredentialStore, opts ...Option) (*Service, error) {
	if builder == nil || composer == nil || verifier == nil || credStore == nil {
		return nil, dErrors.New(dErrors.CodeInternal, "service requires builder, composer, verifier, and store")
	}
	svc := &Service{
		builder:   builder,
		composer:  composer,
		verifier:  verifier,
		store:     credStore,
		registrar: ledger.NoopRegistrar{},
		ledgerCB:  breaker.New("ledger"),
	}
	for _, opt := range opts {
		opt(svc)
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}
	if svc.tracer == nil {
		svc.tracer = tracer.NewNoop()
	}
	return svc, nil
}

// fieldOutcome is the join result for one dispatched field.
type fieldOutcome struct {
	cred    models.FieldCredential
	failure *FieldFailure
}

// Generate runs one generation session. Proof builds for the selected fields
// run concurrently; the session waits for all of them, composes a credential
// per success, and assembles the bundle. Per-field failures are collected and
// reported next to the bundle; only a session where every field failed is an
// error.
func (s *Service) Generate(ctx context.Context, req GenerateRequest) (*GenerateResult, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanGenerate,
		tracer.String(tracer.AttrWallet, tracer.HashValue(req.Wallet.String())),
		tracer.Int64(tracer.AttrSelectionSize, int64(len(req.Selection))),
	)
	var spanErr error
	defer func() { span.End(spanErr) }()

	if req.Wallet.IsNil() {
		spanErr = dErrors.New(dErrors.CodeBadRequest, "wallet address is required")
		return nil, spanErr
	}
	if err := req.Selection.Validate(); err != nil {
		spanErr = err
		return nil, err
	}

	outcomes := make([]fieldOutcome, len(req.Selection))
	var g errgroup.Group
	for i, field := range req.Selection {
		g.Go(func() error {
			outcomes[i] = s.buildOne(ctx, req, field)
			return nil
		})
	}
	_ = g.Wait() //nolint:errcheck // workers report through outcomes, never an error

	creds := make([]models.FieldCredential, 0, len(req.Selection))
	failures := make([]FieldFailure, 0)
	for _, out := range outcomes {
		if out.failure != nil {
			failures = append(failures, *out.failure)
			continue
		}
		creds = append(creds, out.cred)
	}

	bundle, err := bundler.Assemble(req.Wallet, creds)
	if err != nil {
		if s.metrics != nil {
			s.metrics.EmptyBundles.Inc()
		}
		s.logger.WarnContext(ctx, "generation session produced no credentials",
			"wallet", req.Wallet,
			"failed_fields", len(failures),
		)
		spanErr = err
		return nil, err
	}

	if err := s.persist(ctx, bundle); err != nil {
		spanErr = err
		return nil, err
	}

	s.registerProofs(ctx, bundle)

	if s.metrics != nil {
		s.metrics.BundlesAssembled.Inc()
	}
	span.SetAttributes(
		tracer.String(tracer.AttrBundleID, bundle.BundleID.String()),
		tracer.Int64(tracer.AttrIssuedCount, int64(len(bundle.FieldProofs))),
		tracer.Int64(tracer.AttrFailedCount, int64(len(failures))),
	)
	s.audit(ctx, span, audit.Event{
		Wallet:   req.Wallet,
		Subject:  bundle.BundleID.String(),
		Action:   audit.ActionBundleAssembled,
		Decision: "allowed",
	})

	return &GenerateResult{Bundle: bundle, Failures: failures}, nil
}

// buildOne runs the proof build and composition for a single field. All
// failure paths collapse into a FieldFailure; nothing here aborts the session.
func (s *Service) buildOne(ctx context.Context, req GenerateRequest, field models.Field) fieldOutcome {
	ctx, span := s.tracer.Start(ctx, tracer.SpanProofBuild,
		tracer.String(tracer.AttrField, field.String()),
	)
	var spanErr error
	defer func() { span.End(spanErr) }()

	value, err := req.Document.Value(field)
	if err != nil {
		spanErr = err
		return s.failField(ctx, field, err)
	}
	if value == "" {
		spanErr = dErrors.New(dErrors.CodeInvalidInput, "field missing from document")
		return s.failField(ctx, field, spanErr)
	}

	started := time.Now()
	artifact, err := s.builder.Build(ctx, field, value)
	if err != nil {
		spanErr = err
		return s.failField(ctx, field, err)
	}
	if s.metrics != nil {
		s.metrics.ProofBuildLatency.WithLabelValues(artifact.CircuitID).Observe(time.Since(started).Seconds())
		s.metrics.CredentialsIssued.WithLabelValues(field.String()).Inc()
	}
	span.SetAttributes(
		tracer.String(tracer.AttrCircuit, artifact.CircuitID),
		tracer.Duration(tracer.AttrProofLatencyMs, time.Since(started)),
	)

	cred := s.composer.Compose(ctx, field, value, req.Wallet, artifact)

	s.audit(ctx, span, audit.Event{
		Wallet:   req.Wallet,
		Subject:  cred.Credential.ID,
		Action:   audit.ActionCredentialIssued,
		Decision: "allowed",
		Reason:   field.String(),
	})

	return fieldOutcome{cred: cred}
}

func (s *Service) failField(ctx context.Context, field models.Field, err error) fieldOutcome {
	code := dErrors.CodeOf(err)
	if s.metrics != nil {
		s.metrics.ProofBuildFailed.WithLabelValues(field.String(), string(code)).Inc()
	}
	s.logger.WarnContext(ctx, "field credential failed",
		"field", field,
		"code", code,
		"error", err,
	)
	return fieldOutcome{failure: &FieldFailure{
		Field:   field,
		Code:    code,
		Message: err.Error(),
	}}
}

func (s *Service) persist(ctx context.Context, bundle models.CredentialBundle) error {
	now := requesttime.Now(ctx)
	for _, cred := range bundle.FieldProofs {
		rec := &store.Record{
			Wallet:     bundle.WalletAddress,
			BundleID:   bundle.BundleID,
			Credential: cred,
			StoredAt:   now,
		}
		if err := s.store.Save(ctx, rec); err != nil {
			return dErrors.Wrap(err, dErrors.CodeInternal, "failed to persist issued credential")
		}
	}
	return nil
}

// registerProofs submits each issued proof to the ledger behind a breaker.
// Registration is best effort: failures are logged and counted, never
// surfaced to the holder.
func (s *Service) registerProofs(ctx context.Context, bundle models.CredentialBundle) {
	if _, ok := s.registrar.(ledger.NoopRegistrar); ok {
		return
	}
	ctx, regSpan := s.tracer.Start(ctx, tracer.SpanRegister,
		tracer.String(tracer.AttrBundleID, bundle.BundleID.String()),
	)
	defer regSpan.End(nil)
	for _, cred := range bundle.FieldProofs {
		if s.ledgerCB.IsOpen() {
			if s.metrics != nil {
				s.metrics.LedgerFallbacks.Inc()
			}
			regSpan.AddEvent(tracer.EventLedgerSkipped,
				tracer.String(tracer.AttrField, cred.Field.String()),
				tracer.Bool(tracer.AttrBreakerOpen, true),
			)
			continue
		}

		txRef, err := s.registrar.Register(ctx, ledger.Registration{
			Wallet:     bundle.WalletAddress,
			Field:      cred.Field,
			ProofHex:   cred.Artifact.ProofHex,
			ClaimValue: cred.FieldValue,
		})
		if err != nil {
			if _, change := s.ledgerCB.RecordFailure(); change.Opened {
				s.logger.WarnContext(ctx, "ledger breaker opened", "breaker", s.ledgerCB.Name())
			}
			s.logger.WarnContext(ctx, "ledger registration failed",
				"field", cred.Field,
				"error", err,
			)
			continue
		}
		s.ledgerCB.RecordSuccess()
		regSpan.AddEvent(tracer.EventLedgerAccepted,
			tracer.String(tracer.AttrField, cred.Field.String()),
		)
		s.audit(ctx, regSpan, audit.Event{
			Wallet:   bundle.WalletAddress,
			Subject:  txRef,
			Action:   audit.ActionProofRegistered,
			Decision: "allowed",
			Reason:   cred.Field.String(),
		})
	}
}

// Verify renders a verdict for one presented credential. The verdict itself
// is never an error; errors are reserved for the request being unprocessable.
func (s *Service) Verify(ctx context.Context, cred models.FieldCredential) (models.VerificationVerdict, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanVerify,
		tracer.String(tracer.AttrField, cred.Field.String()),
	)
	defer span.End(nil)

	verdict := s.verifier.Verify(ctx, cred)

	label := "invalid"
	decision := "denied"
	if verdict.IsValid {
		label = "valid"
		decision = "allowed"
	}
	if s.metrics != nil {
		s.metrics.Verifications.WithLabelValues(label).Inc()
	}
	span.SetAttributes(tracer.String(tracer.AttrVerdict, label))
	s.audit(ctx, span, audit.Event{
		Subject:  cred.Credential.ID,
		Action:   audit.ActionCredentialVerified,
		Decision: decision,
		Reason:   verdict.Reason,
	})

	return verdict, nil
}

// Retrieve returns the most recently issued credential for (wallet, field).
func (s *Service) Retrieve(ctx context.Context, wallet id.WalletAddress, field models.Field) (*store.Record, error) {
	ctx, span := s.tracer.Start(ctx, tracer.SpanRetrieve,
		tracer.String(tracer.AttrWallet, tracer.HashValue(wallet.String())),
		tracer.String(tracer.AttrField, field.String()),
	)
	var spanErr error
	defer func() { span.End(spanErr) }()

	rec, err := s.store.FindLatest(ctx, wallet, field)
	if err != nil {
		spanErr = err
		return nil, err
	}
	return rec, nil
}

func (s *Service) audit(ctx context.Context, span tracer.Span, event audit.Event) {
	if s.auditor == nil {
		return
	}
	event.Timestamp = requesttime.Now(ctx)
	event.RequestID = middleware.GetRequestID(ctx)
	event.DevicePrint = device.Fingerprint(ctx)
	if err := s.auditor.Emit(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "audit emit failed", "action", event.Action, "error", err)
		return
	}
	span.AddEvent(tracer.EventAuditEmitted)
}
