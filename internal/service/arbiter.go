package service

import "lexdocs/internal/extract"

// Arbitrate picks the winning text between the native extraction result and
// the OCR result. OCR wins only on strictly higher confidence; a tie keeps
// the native result, so a zero-confidence OCR pass can never displace
// anything. The winner carries the union of methods tried by both sides.
func Arbitrate(native, ocr extract.Result) extract.Result {
	merged := make([]string, 0, len(native.MethodsTried)+len(ocr.MethodsTried))
	merged = append(merged, native.MethodsTried...)
	merged = append(merged, ocr.MethodsTried...)

	winner := native
	if ocr.Confidence > native.Confidence {
		winner = ocr
	}
	winner.MethodsTried = merged
	if winner.PageCount == 0 {
		if native.PageCount > ocr.PageCount {
			winner.PageCount = native.PageCount
		} else {
			winner.PageCount = ocr.PageCount
		}
	}
	return winner
}
