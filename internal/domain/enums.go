package domain

// FileType represents the allowed file types for upload.
type FileType string

const (
	FileTypePDF  FileType = "pdf"
	FileTypeDOCX FileType = "docx"
	FileTypeTXT  FileType = "txt"
	FileTypeJPG  FileType = "jpg"
	FileTypePNG  FileType = "png"
	FileTypeTIFF FileType = "tiff"
)

// AllowedFileTypes maps FileType to its MIME content type.
var AllowedFileTypes = map[FileType]string{
	FileTypePDF:  "application/pdf",
	FileTypeDOCX: "application/vnd.openxmlformats-officedocument.wordprocessingml.document",
	FileTypeTXT:  "text/plain",
	FileTypeJPG:  "image/jpeg",
	FileTypePNG:  "image/png",
	FileTypeTIFF: "image/tiff",
}

// AllowedExtensions maps file extensions (without dot) to FileType.
var AllowedExtensions = map[string]FileType{
	"pdf":  FileTypePDF,
	"docx": FileTypeDOCX,
	"txt":  FileTypeTXT,
	"jpg":  FileTypeJPG,
	"jpeg": FileTypeJPG,
	"png":  FileTypePNG,
	"tif":  FileTypeTIFF,
	"tiff": FileTypeTIFF,
}

// IsImageType reports whether the file type is a standalone image. Images
// skip native text extraction and go straight to OCR.
func IsImageType(ft FileType) bool {
	return ft == FileTypeJPG || ft == FileTypePNG || ft == FileTypeTIFF
}

// ProcessingStatus represents the pipeline lifecycle of a document.
type ProcessingStatus string

const (
	ProcessingStatusPending    ProcessingStatus = "pending"
	ProcessingStatusProcessing ProcessingStatus = "processing"
	ProcessingStatusCompleted  ProcessingStatus = "completed"
	ProcessingStatusFailed     ProcessingStatus = "failed"
)

// DocumentType is the legal document category assigned by the classifier.
type DocumentType string

const (
	DocTypeAgreement       DocumentType = "agreement"
	DocTypeAffidavit       DocumentType = "affidavit"
	DocTypeCourtOrder      DocumentType = "court_order"
	DocTypeFinancialStmt   DocumentType = "financial_statement"
	DocTypeCorrespondence  DocumentType = "correspondence"
	DocTypeEvidence        DocumentType = "evidence"
	DocTypePleading        DocumentType = "pleading"
	DocTypeContract        DocumentType = "contract"
	DocTypeWill            DocumentType = "will"
	DocTypePowerOfAttorney DocumentType = "power_of_attorney"
	DocTypeOther           DocumentType = "other"
)

// KnownDocumentTypes is the closed set of classifier outputs. Anything a
// classifier returns outside this set collapses to DocTypeOther.
var KnownDocumentTypes = map[DocumentType]bool{
	DocTypeAgreement:       true,
	DocTypeAffidavit:       true,
	DocTypeCourtOrder:      true,
	DocTypeFinancialStmt:   true,
	DocTypeCorrespondence:  true,
	DocTypeEvidence:        true,
	DocTypePleading:        true,
	DocTypeContract:        true,
	DocTypeWill:            true,
	DocTypePowerOfAttorney: true,
	DocTypeOther:           true,
}

// NormalizeDocumentType maps a raw classifier string onto the known set.
func NormalizeDocumentType(raw string) DocumentType {
	dt := DocumentType(raw)
	if KnownDocumentTypes[dt] {
		return dt
	}
	return DocTypeOther
}
