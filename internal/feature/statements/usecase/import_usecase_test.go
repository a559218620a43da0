package usecase

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const exportContent = `Currency,Cash,Investments,Total (CAD),Exchange Rate to CAD
CAD,100.00,900.00,"1,000.00",1

,Product,Symbol,Name,Quantity,Last Price,Currency,Change $,Change %,Total Book Cost,Total Market Value,Unrealized Gain/Loss $,Unrealized Gain/Loss %,Average Cost,Annual Dividend Amount
CAD Holdings,Common Shares,RY,"ROYAL BANK OF CANADA",10,120.50,CAD,0.75,0.62%,"1,100.00","1,205.00",105.00,9.55%,110.00,5.52
`

func TestImportUsecase_ImportAll(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	// Two exports for account 111: only the newest one must be parsed.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Holdings 111 August 1, 2026.csv"), []byte(""), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Holdings 111 August 22, 2026.csv"), []byte(exportContent), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Holdings 222 July 15, 2026.csv"), []byte(exportContent), 0o644))

	res, err := NewImportUsecase(dir).ImportAll()
	require.NoError(t, err)

	assert.Equal(t, 2, res.FilesSelected)
	assert.Equal(t, 0, res.FilesSkipped)
	require.Len(t, res.Holdings, 2)
	require.Len(t, res.Cash, 2)

	accounts := []string{res.Holdings[0].Account, res.Holdings[1].Account}
	assert.ElementsMatch(t, []string{"111", "222"}, accounts)
}

func TestImportUsecase_ImportAll_EmptyDir(t *testing.T) {
	t.Parallel()

	res, err := NewImportUsecase(t.TempDir()).ImportAll()
	require.NoError(t, err)

	assert.Equal(t, 0, res.FilesSelected)
	assert.Empty(t, res.Holdings)
	assert.Empty(t, res.Cash)
}

func TestImportUsecase_ImportAll_MissingDir(t *testing.T) {
	t.Parallel()

	_, err := NewImportUsecase(filepath.Join(t.TempDir(), "nope")).ImportAll()
	assert.Error(t, err)
}
