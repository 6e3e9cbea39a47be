package bank

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/SBertone10/prog1-equipo-0X/pkg/quiz"
)

// Category categoría del juego y su archivo JSON
type Category struct {
	Name string
	File string
	Icon string
}

// DefaultCategories categorías con las que arranca el juego
var DefaultCategories = []Category{
	{Name: "Peliculas y Series", File: "PeliSeries.json", Icon: "🎬"},
	{Name: "Ciencia", File: "Ciencia.json", Icon: "🔬"},
	{Name: "Videojuegos", File: "Videojuegos.json", Icon: "🎮"},
	{Name: "Historia", File: "Historia.json", Icon: "🏛️"},
	{Name: "Música", File: "Musica.json", Icon: "🎵"},
	{Name: "Futbol", File: "Futbol.json", Icon: "⚽"},
	{Name: "Star Wars", File: "StarWars.json", Icon: "🌌"},
	{Name: "Rainbow Six Siege", File: "RainbowSixSiege.json", Icon: "🎯"},
}

// Bank banco de preguntas en disco, un archivo por categoría
type Bank struct {
	dir        string
	categories []Category
	data       map[string][]models.QuestionRecord
	mu         sync.RWMutex

	// writeMu serializa el acceso a los archivos: carga y agregado
	writeMu sync.Mutex
}

// New crea el banco sin leer nada todavía
func New(dir string, categories []Category) *Bank {
	return &Bank{
		dir:        dir,
		categories: append([]Category(nil), categories...),
		data:       make(map[string][]models.QuestionRecord),
	}
}

// LoadCategories lee todas las categorías y devuelve una copia.
// Un archivo con problemas deja su categoría vacía; nunca falla.
func (b *Bank) LoadCategories() map[string][]models.QuestionRecord {
	log.Printf("📂 Cargando preguntas desde: %s", b.dir)

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	loaded := make(map[string][]models.QuestionRecord, len(b.categories))
	total := 0
	for _, c := range b.categories {
		questions, err := b.loadFile(c)
		if err != nil {
			log.Printf("⚠️ %v", err)
			questions = []models.QuestionRecord{}
		}
		loaded[c.Name] = questions
		total += len(questions)
	}

	b.mu.Lock()
	b.data = loaded
	b.mu.Unlock()

	log.Printf("✅ %d preguntas cargadas en %d categorías", total, len(b.categories))
	return b.copyAll()
}

// Reload vuelve a leer el banco desde disco
func (b *Bank) Reload() {
	log.Println("🔄 Recargando preguntas...")
	b.LoadCategories()
}

// Questions preguntas de una categoría
func (b *Bank) Questions(category string) ([]models.QuestionRecord, error) {
	if _, ok := b.lookup(category); !ok {
		return nil, fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	b.mu.RLock()
	defer b.mu.RUnlock()
	return cloneRecords(b.data[category]), nil
}

// Categories resumen de las categorías en orden
func (b *Bank) Categories() []models.CategoryInfo {
	b.mu.RLock()
	defer b.mu.RUnlock()

	infos := make([]models.CategoryInfo, 0, len(b.categories))
	for _, c := range b.categories {
		n := len(b.data[c.Name])
		infos = append(infos, models.CategoryInfo{
			Name:     c.Name,
			Icon:     c.Icon,
			File:     c.File,
			Count:    n,
			Playable: n >= quiz.RoundSize,
		})
	}
	return infos
}

// Submit valida el formulario y agrega la pregunta
func (b *Bank) Submit(category string, sub models.QuestionSubmission) (models.QuestionRecord, error) {
	if _, ok := b.lookup(category); !ok {
		return models.QuestionRecord{}, &ValidationError{Field: "categoria", Message: "Seleccioná una categoría válida."}
	}
	record, err := ValidateSubmission(sub)
	if err != nil {
		return models.QuestionRecord{}, err
	}
	if err := b.AppendQuestion(category, record); err != nil {
		return models.QuestionRecord{}, err
	}
	return record, nil
}

// AppendQuestion agrega una pregunta al final del archivo de la categoría
func (b *Bank) AppendQuestion(category string, record models.QuestionRecord) error {
	return b.appendRecords(category, record)
}

func (b *Bank) appendRecords(category string, records ...models.QuestionRecord) error {
	c, ok := b.lookup(category)
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownCategory, category)
	}
	path := b.path(c)

	b.writeMu.Lock()
	defer b.writeMu.Unlock()

	// Se conservan los elementos existentes tal cual están en disco.
	existing, err := readRaw(path)
	if err != nil {
		log.Printf("⚠️ No se pudo leer %s, se empieza con una lista vacía: %v", path, err)
		existing = nil
	}
	for _, r := range records {
		raw, err := json.Marshal(r)
		if err != nil {
			return &WriteError{Category: category, Path: path, Err: err}
		}
		existing = append(existing, raw)
	}

	if err := writeRaw(path, existing); err != nil {
		return &WriteError{Category: category, Path: path, Err: err}
	}

	// Solo se refresca la memoria después de una escritura exitosa.
	questions, err := b.loadFile(c)
	if err != nil {
		log.Printf("⚠️ %v", err)
		return nil
	}
	b.mu.Lock()
	b.data[c.Name] = questions
	b.mu.Unlock()

	log.Printf("✅ %d pregunta(s) agregada(s) a '%s'", len(records), category)
	return nil
}

// HealthCheck verifica que el directorio del banco exista
func (b *Bank) HealthCheck() error {
	info, err := os.Stat(b.dir)
	if err != nil {
		return fmt.Errorf("directorio de preguntas: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%s no es un directorio", b.dir)
	}
	return nil
}

func (b *Bank) loadFile(c Category) ([]models.QuestionRecord, error) {
	path := b.path(c)
	raws, err := readRaw(path)
	if errors.Is(err, fs.ErrNotExist) {
		if err := writeRaw(path, nil); err != nil {
			log.Printf("⚠️ No se pudo crear %s: %v", c.File, err)
		}
		return []models.QuestionRecord{}, nil
	}
	if err != nil {
		return nil, &FileError{Category: c.Name, Path: path, Err: err}
	}

	questions := make([]models.QuestionRecord, 0, len(raws))
	for i, raw := range raws {
		var q models.QuestionRecord
		if err := json.Unmarshal(raw, &q); err != nil {
			log.Printf("⚠️ Pregunta %d inválida en %s: %v", i, c.File, err)
			continue
		}
		if err := q.Check(); err != nil {
			log.Printf("⚠️ Pregunta %d descartada en %s: %v", i, c.File, err)
			continue
		}
		questions = append(questions, q)
	}
	return questions, nil
}

func (b *Bank) lookup(name string) (Category, bool) {
	for _, c := range b.categories {
		if c.Name == name {
			return c, true
		}
	}
	return Category{}, false
}

func (b *Bank) path(c Category) string {
	return filepath.Join(b.dir, c.File)
}

func (b *Bank) copyAll() map[string][]models.QuestionRecord {
	b.mu.RLock()
	defer b.mu.RUnlock()
	out := make(map[string][]models.QuestionRecord, len(b.data))
	for name, qs := range b.data {
		out[name] = cloneRecords(qs)
	}
	return out
}

func cloneRecords(in []models.QuestionRecord) []models.QuestionRecord {
	out := make([]models.QuestionRecord, len(in))
	for i, q := range in {
		out[i] = q.Clone()
	}
	return out
}

// readRaw lee el arreglo del archivo sin interpretar cada elemento
func readRaw(path string) ([]json.RawMessage, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var raws []json.RawMessage
	if err := json.Unmarshal(data, &raws); err != nil {
		return nil, fmt.Errorf("JSON inválido: %w", err)
	}
	return raws, nil
}

func writeRaw(path string, raws []json.RawMessage) error {
	if raws == nil {
		raws = []json.RawMessage{}
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	if err := enc.Encode(raws); err != nil {
		return err
	}
	return os.WriteFile(path, buf.Bytes(), 0644)
}
