package drift

import (
	"context"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/temirov/pom-audit/internal/pom"
)

const (
	parentPathRequiredMessageConstant     = "parent descriptor path must be provided"
	unsupportedFormatTemplateConstant     = "unsupported output format: %s"
	parentExtractionErrorTemplateConstant = "unable to read parent descriptor: %w"
	discoveryErrorTemplateConstant        = "unable to discover descriptors: %w"
	absolutePathErrorTemplateConstant     = "unable to resolve %s: %w"
	parentExtractedMessageConstant        = "parent descriptor extracted"
	descriptorsDiscoveredMessageConstant  = "descriptors discovered"
	moduleComparedMessageConstant         = "module compared"
	moduleSkippedMessageConstant          = "module skipped without parent version"
	reportCompletedMessageConstant        = "drift report completed"
	logFieldPathConstant                  = "path"
	logFieldRootConstant                  = "root"
	logFieldCountConstant                 = "count"
	logFieldParentVersionConstant         = "parent_version"
	logFieldModulesConstant               = "modules"
	logFieldSkippedConstant               = "skipped"
	logFieldUnusedConstant                = "unused_properties"
	logFieldThirdPartyConstant            = "third_party_literals"
)

// ErrParentPathRequired indicates that no parent descriptor was configured.
var ErrParentPathRequired = errors.New(parentPathRequiredMessageConstant)

// Service compares child module descriptors with their parent baseline.
type Service struct {
	discoverer   ConfigurationDiscoverer
	extractor    VersionExtractor
	logger       *zap.Logger
	outputWriter io.Writer
}

// NewService constructs a Service using the provided dependencies.
func NewService(discoverer ConfigurationDiscoverer, extractor VersionExtractor, logger *zap.Logger, outputWriter io.Writer) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if outputWriter == nil {
		outputWriter = io.Discard
	}
	return &Service{
		discoverer:   discoverer,
		extractor:    extractor,
		logger:       logger,
		outputWriter: outputWriter,
	}
}

// Run builds the drift report and renders it to the output writer.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	renderer, rendererError := resolveRenderer(options)
	if rendererError != nil {
		return rendererError
	}

	report, reportError := service.BuildReport(executionContext, options)
	if reportError != nil {
		return reportError
	}

	return renderer.Render(service.outputWriter, report)
}

// BuildReport extracts the parent baseline, compares every discovered child
// descriptor against it and finally lists unused parent properties together with
// the literal versions gathered from every parsed descriptor.
func (service *Service) BuildReport(executionContext context.Context, options CommandOptions) (Report, error) {
	if len(strings.TrimSpace(options.ParentPath)) == 0 {
		return Report{}, ErrParentPathRequired
	}

	literals := pom.NewLiteralVersionSet()

	parentDocument, parentError := service.extractor.ParseDocument(options.ParentPath)
	if parentError != nil {
		return Report{}, fmt.Errorf(parentExtractionErrorTemplateConstant, parentError)
	}
	parentVersions := service.extractor.ExtractDocumentVersions(parentDocument, literals)
	service.logger.Debug(
		parentExtractedMessageConstant,
		zap.String(logFieldPathConstant, options.ParentPath),
		zap.Int(logFieldCountConstant, parentVersions.Len()),
	)

	descriptorPaths, discoveryError := service.discoverer.DiscoverConfigurationFiles(options.ScanRoot)
	if discoveryError != nil {
		return Report{}, fmt.Errorf(discoveryErrorTemplateConstant, discoveryError)
	}
	service.logger.Debug(
		descriptorsDiscoveredMessageConstant,
		zap.String(logFieldRootConstant, options.ScanRoot),
		zap.Int(logFieldCountConstant, len(descriptorPaths)),
	)

	absoluteParentPath, absoluteError := filepath.Abs(options.ParentPath)
	if absoluteError != nil {
		return Report{}, fmt.Errorf(absolutePathErrorTemplateConstant, options.ParentPath, absoluteError)
	}

	report := Report{Modules: []ModuleReport{}}
	for _, descriptorPath := range descriptorPaths {
		if contextError := executionContext.Err(); contextError != nil {
			return Report{}, contextError
		}

		absoluteDescriptorPath, descriptorAbsoluteError := filepath.Abs(descriptorPath)
		if descriptorAbsoluteError != nil {
			return Report{}, fmt.Errorf(absolutePathErrorTemplateConstant, descriptorPath, descriptorAbsoluteError)
		}
		if absoluteDescriptorPath == absoluteParentPath {
			continue
		}

		displayPath := service.displayPath(descriptorPath, options)
		moduleReport, compared, compareError := service.ReportOverrides(descriptorPath, displayPath, parentVersions, literals)
		if compareError != nil {
			return Report{}, compareError
		}
		if !compared {
			service.logger.Debug(moduleSkippedMessageConstant, zap.String(logFieldPathConstant, descriptorPath))
			if options.ReportSkipped {
				report.SkippedModules = append(report.SkippedModules, displayPath)
			}
			continue
		}

		service.logger.Debug(
			moduleComparedMessageConstant,
			zap.String(logFieldPathConstant, descriptorPath),
			zap.String(logFieldParentVersionConstant, moduleReport.ParentVersion),
			zap.Int(logFieldCountConstant, len(moduleReport.Entries)),
		)
		report.Modules = append(report.Modules, moduleReport)
	}

	unusedProperties, thirdPartyLiterals, summaryError := service.ReportUnusedAndThirdParty(options.ParentPath, literals)
	if summaryError != nil {
		return Report{}, summaryError
	}
	report.UnusedProperties = unusedProperties
	report.ThirdPartyLiterals = thirdPartyLiterals

	service.logger.Info(
		reportCompletedMessageConstant,
		zap.Int(logFieldModulesConstant, len(report.Modules)),
		zap.Int(logFieldSkippedConstant, len(report.SkippedModules)),
		zap.Int(logFieldUnusedConstant, len(report.UnusedProperties)),
		zap.Int(logFieldThirdPartyConstant, len(report.ThirdPartyLiterals)),
	)

	return report, nil
}

// ReportOverrides compares the child descriptor at childPath with parentVersions.
// It returns false without entries when the child declares no parent version.
func (service *Service) ReportOverrides(childPath string, displayPath string, parentVersions pom.VersionPropertyMap, literals *pom.LiteralVersionSet) (ModuleReport, bool, error) {
	childDocument, parseError := service.extractor.ParseDocument(childPath)
	if parseError != nil {
		return ModuleReport{}, false, parseError
	}

	parentVersion := strings.TrimSpace(childDocument.ParentVersion)
	if len(parentVersion) == 0 {
		return ModuleReport{}, false, nil
	}

	childVersions := service.extractor.ExtractDocumentVersions(childDocument, literals)
	moduleReport := ModuleReport{
		Path:          displayPath,
		ParentVersion: parentVersion,
		Entries:       make([]OverrideEntry, 0, childVersions.Len()),
	}
	for _, childEntry := range childVersions.Entries() {
		moduleReport.Entries = append(moduleReport.Entries, OverrideEntry{
			Name:    childEntry.Name,
			Version: childEntry.Version,
			Parent:  compareWithParent(childEntry, parentVersions),
		})
	}

	return moduleReport, true, nil
}

// ReportUnusedAndThirdParty returns the parent's unreferenced version properties
// and the sorted literal coordinates accumulated so far.
func (service *Service) ReportUnusedAndThirdParty(parentPath string, literals *pom.LiteralVersionSet) ([]string, []string, error) {
	parentDocument, parseError := service.extractor.ParseDocument(parentPath)
	if parseError != nil {
		return nil, nil, fmt.Errorf(parentExtractionErrorTemplateConstant, parseError)
	}
	return service.extractor.UnusedVersionProperties(parentDocument), literals.Sorted(), nil
}

func compareWithParent(childEntry pom.VersionEntry, parentVersions pom.VersionPropertyMap) string {
	parentVersion, declared := parentVersions.Lookup(childEntry.Name)
	switch {
	case !declared:
		return ParentVersionUnavailable
	case parentVersion == childEntry.Version:
		return ParentVersionIdentical
	default:
		return parentVersion
	}
}

// displayPath strips everything up to and including the first root marker;
// without a marker match the path relative to the scan root is used.
func (service *Service) displayPath(descriptorPath string, options CommandOptions) string {
	slashPath := filepath.ToSlash(descriptorPath)
	if len(options.RootMarker) > 0 {
		if _, afterMarker, found := strings.Cut(slashPath, options.RootMarker); found {
			return afterMarker
		}
	}
	if relativePath, relativeError := filepath.Rel(options.ScanRoot, descriptorPath); relativeError == nil {
		return filepath.ToSlash(relativePath)
	}
	return slashPath
}
