package sweep

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"go.uber.org/zap"
)

const (
	// ProtectionsFileNameConstant is the fixed name of the optional protections
	// file read from the working directory at startup.
	ProtectionsFileNameConstant = ".sweep.json"

	protectionsFileMissingFieldMessageConstant = "protections file has no array-valued protected field"
	protectionsFileParseErrorTemplateConstant  = "failed to parse protections file: %w"
	protectionsFileReadWarningMessageConstant  = "unable to read protections file, using defaults"
	protectionsFileParseWarningMessageConstant = "unable to parse protections file, using defaults"
	logFieldProtectionsFileConstant            = "protections_file"
)

var defaultProtectedBranchNames = []string{"main", "master", "develop"}

// protectionsFileSchema mirrors the recognized structure of the protections file.
type protectionsFileSchema struct {
	Protected []string `json:"protected"`
}

// ProtectedBranchSet holds branch names exempt from deletion consideration.
type ProtectedBranchSet struct {
	orderedNames []string
	membership   map[string]struct{}
}

// NewProtectedBranchSet builds a set from the provided names, trimming blanks
// and preserving first-occurrence order.
func NewProtectedBranchSet(branchNames []string) ProtectedBranchSet {
	orderedNames := make([]string, 0, len(branchNames))
	membership := make(map[string]struct{}, len(branchNames))
	for _, branchName := range branchNames {
		trimmedName := strings.TrimSpace(branchName)
		if len(trimmedName) == 0 {
			continue
		}
		if _, alreadyPresent := membership[trimmedName]; alreadyPresent {
			continue
		}
		membership[trimmedName] = struct{}{}
		orderedNames = append(orderedNames, trimmedName)
	}
	return ProtectedBranchSet{orderedNames: orderedNames, membership: membership}
}

// Contains reports whether the branch name is protected.
func (set ProtectedBranchSet) Contains(branchName string) bool {
	_, present := set.membership[branchName]
	return present
}

// Names returns the protected branch names in resolution order.
func (set ProtectedBranchSet) Names() []string {
	return append([]string{}, set.orderedNames...)
}

// DefaultProtectedBranchNames returns the built-in protection list.
func DefaultProtectedBranchNames() []string {
	return append([]string{}, defaultProtectedBranchNames...)
}

// ResolveProtectedBranchSet computes the effective protection set from the
// optional file contents and configured overrides. Overrides win over the
// file; a missing or structurally invalid file falls back to the defaults.
// The returned error is advisory: a usable set is always returned.
func ResolveProtectedBranchSet(fileContents []byte, filePresent bool, overrideNames []string) (ProtectedBranchSet, error) {
	overrideSet := NewProtectedBranchSet(overrideNames)
	if len(overrideSet.orderedNames) > 0 {
		return overrideSet, nil
	}

	if !filePresent {
		return NewProtectedBranchSet(defaultProtectedBranchNames), nil
	}

	var parsedSchema protectionsFileSchema
	if unmarshalError := json.Unmarshal(jsonc.ToJSON(fileContents), &parsedSchema); unmarshalError != nil {
		return NewProtectedBranchSet(defaultProtectedBranchNames), fmt.Errorf(protectionsFileParseErrorTemplateConstant, unmarshalError)
	}
	if parsedSchema.Protected == nil {
		return NewProtectedBranchSet(defaultProtectedBranchNames), errors.New(protectionsFileMissingFieldMessageConstant)
	}

	return NewProtectedBranchSet(parsedSchema.Protected), nil
}

// LoadProtectedBranchSet reads the protections file from the working directory
// and resolves the effective set, logging a warning on any read or parse
// problem instead of failing.
func LoadProtectedBranchSet(workingDirectory string, overrideNames []string, logger *zap.Logger) ProtectedBranchSet {
	if logger == nil {
		logger = zap.NewNop()
	}

	protectionsFilePath := filepath.Join(workingDirectory, ProtectionsFileNameConstant)
	fileContents, readError := os.ReadFile(protectionsFilePath)
	filePresent := readError == nil
	if readError != nil && !errors.Is(readError, fs.ErrNotExist) {
		logger.Warn(
			protectionsFileReadWarningMessageConstant,
			zap.String(logFieldProtectionsFileConstant, protectionsFilePath),
			zap.Error(readError),
		)
	}

	resolvedSet, resolveError := ResolveProtectedBranchSet(fileContents, filePresent, overrideNames)
	if resolveError != nil {
		logger.Warn(
			protectionsFileParseWarningMessageConstant,
			zap.String(logFieldProtectionsFileConstant, protectionsFilePath),
			zap.Error(resolveError),
		)
	}
	return resolvedSet
}
