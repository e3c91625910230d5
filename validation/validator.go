// Package validation gates upload candidates before any network call.
// The validator never returns a Go error: every decision is reported as a
// structured ValidationOutcome with human-readable diagnostics.
package validation

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"stitch-client/domain"
	"stitch-client/domain/mimetypes"
)

const (
	maxNameLength = 255

	// Soft warning threshold for mobile uploads.
	mobileSoftLimitBytes = 25 * domain.MB

	// Characters commonly unsafe in filesystem paths. Presence warns but
	// does not reject: the service stores files under its own names.
	unsafeNameChars = `<>:"/\|?*`

	// extensionUnknown marks the lenient mobile acceptance of a candidate
	// whose type could not be resolved but looks document-like.
	extensionUnknown = "unknown"
)

type Validator struct {
	profile  domain.DeviceProfile
	validate *validator.Validate
	log      *slog.Logger
}

func NewValidator(profile domain.DeviceProfile, log *slog.Logger) *Validator {
	return &Validator{
		profile:  profile,
		validate: validator.New(),
		log:      log,
	}
}

// Validate runs the name, type and size checks in fixed order.
// A failing name check short-circuits type and size; a failing type check
// short-circuits size (size messaging depends on the resolved extension).
func (v *Validator) Validate(candidate domain.UploadCandidate) domain.ValidationOutcome {
	outcome := domain.ValidationOutcome{}

	if err := v.validate.Struct(candidate); err != nil {
		outcome.Errors = append(outcome.Errors, fmt.Sprintf("invalid candidate: %v", err))
		return outcome
	}

	nameErrs, nameWarns := v.checkName(candidate)
	outcome.Errors = append(outcome.Errors, nameErrs...)
	outcome.Warnings = append(outcome.Warnings, nameWarns...)
	if len(nameErrs) > 0 {
		return outcome
	}

	ext, typeErrs, typeWarns := v.checkType(candidate)
	outcome.Errors = append(outcome.Errors, typeErrs...)
	outcome.Warnings = append(outcome.Warnings, typeWarns...)
	if len(typeErrs) > 0 {
		return outcome
	}

	sizeErrs, sizeWarns := v.checkSize(candidate)
	outcome.Errors = append(outcome.Errors, sizeErrs...)
	outcome.Warnings = append(outcome.Warnings, sizeWarns...)
	if len(sizeErrs) > 0 {
		return outcome
	}

	normalized := candidate
	normalized.Name = normalizeName(candidate.Name, ext)
	outcome.IsValid = true
	outcome.Normalized = &normalized

	v.log.Debug("Candidate accepted",
		"name", normalized.Name,
		"extension", ext,
		"size", candidate.Size,
		"warnings", len(outcome.Warnings))
	return outcome
}

// ValidateMany validates each candidate independently and partitions the
// results. One candidate's outcome never affects another's.
func (v *Validator) ValidateMany(candidates []domain.UploadCandidate) ([]domain.UploadCandidate, []string, []string) {
	outcomes := lo.Map(candidates, func(c domain.UploadCandidate, _ int) domain.ValidationOutcome {
		return v.Validate(c)
	})

	var accepted []domain.UploadCandidate
	var errs []string
	var warnings []string
	for i, outcome := range outcomes {
		if outcome.IsValid {
			accepted = append(accepted, *outcome.Normalized)
		} else {
			for _, e := range outcome.Errors {
				errs = append(errs, fmt.Sprintf("file %d (%s): %s", i+1, candidates[i].Name, e))
			}
		}
		warnings = append(warnings, outcome.Warnings...)
	}
	return accepted, errs, warnings
}

func (v *Validator) checkName(candidate domain.UploadCandidate) (errs, warns []string) {
	name := candidate.Name
	if strings.TrimSpace(name) == "" {
		return []string{"filename is empty"}, nil
	}
	if len(name) > maxNameLength {
		return []string{fmt.Sprintf("filename exceeds %d characters", maxNameLength)}, nil
	}
	if strings.ContainsAny(name, unsafeNameChars) {
		warns = append(warns, fmt.Sprintf("filename contains characters unsafe in paths (%s)", unsafeNameChars))
	}
	return nil, warns
}

// checkType resolves an extension for the candidate, in order: the
// filename's dot-suffix when it is in the allowed set, then the declared
// content type via the lookup table, then coarse content-type sniffing.
// On mobile, an unresolvable but document-like type gets one lenient pass.
func (v *Validator) checkType(candidate domain.UploadCandidate) (ext string, errs, warns []string) {
	contentType := candidate.ContentType
	if contentType == "" && len(candidate.Data) > 0 {
		// Sniff the payload itself when the host gave no type hint.
		contentType = mimetype.Detect(candidate.Data).String()
		v.log.Debug("Sniffed content type from payload", "name", candidate.Name, "content_type", contentType)
	}

	if suffix := dotSuffix(candidate.Name); suffix != "" && mimetypes.IsAllowedExtension(suffix) {
		return strings.ToLower(suffix), nil, nil
	}
	if resolved, ok := mimetypes.ExtensionForMIME(contentType); ok {
		ext = resolved
	} else if resolved, ok := mimetypes.SniffExtension(contentType); ok {
		ext = resolved
	}

	if ext == "" {
		if v.profile.IsMobile && mimetypes.LooksDocumentLike(contentType) {
			warns = append(warns, fmt.Sprintf("could not determine type of %q, accepting as unknown", candidate.Name))
			return extensionUnknown, nil, warns
		}
		return "", []string{fmt.Sprintf("unable to determine file type of %q", candidate.Name)}, nil
	}
	if !mimetypes.IsAllowedExtension(ext) {
		return "", []string{fmt.Sprintf("unsupported file type %q, supported types: %s",
			ext, strings.Join(mimetypes.AllowedExtensionList, ", "))}, nil
	}
	return ext, nil, nil
}

func (v *Validator) checkSize(candidate domain.UploadCandidate) (errs, warns []string) {
	if candidate.Size == 0 {
		if v.profile.IsMobile {
			return nil, []string{fmt.Sprintf("file %q reports no size, it may be empty", candidate.Name)}
		}
		return []string{fmt.Sprintf("file %q looks empty or corrupted (0 bytes)", candidate.Name)}, nil
	}
	if candidate.Size > v.profile.MaxUploadBytes {
		return []string{fmt.Sprintf("file %q is too large: %d bytes (limit is %d)",
			candidate.Name, candidate.Size, v.profile.MaxUploadBytes)}, nil
	}
	if v.profile.IsMobile && candidate.Size > mobileSoftLimitBytes {
		warns = append(warns, fmt.Sprintf("file %q is large for a mobile connection (%d bytes)",
			candidate.Name, candidate.Size))
	}
	return nil, warns
}

// normalizeName suffixes the display name with the resolved extension when
// the original lacked a recognized one. The lenient unknown marker is never
// appended: the original name is kept as-is in that case.
func normalizeName(name, ext string) string {
	if ext == extensionUnknown {
		return name
	}
	if strings.HasSuffix(strings.ToLower(name), "."+ext) {
		return name
	}
	return name + "." + ext
}

// dotSuffix returns the lowercase extension after the last dot, or "".
func dotSuffix(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 || idx == len(name)-1 {
		return ""
	}
	return strings.ToLower(name[idx+1:])
}
