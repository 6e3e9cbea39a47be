package bank

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"sync"
	"testing"

	"github.com/SBertone10/prog1-equipo-0X/pkg/models"
	"github.com/SBertone10/prog1-equipo-0X/pkg/quiz"
)

var testCategories = []Category{
	{Name: "Ciencia", File: "Ciencia.json", Icon: "🔬"},
	{Name: "Historia", File: "Historia.json", Icon: "🏛️"},
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func sampleRecord(i int) models.QuestionRecord {
	return models.QuestionRecord{
		Pregunta:          fmt.Sprintf("¿Pregunta %d?", i),
		Opciones:          []string{"uno", "dos", "tres", "cuatro"},
		RespuestaCorrecta: "dos",
	}
}

func TestLoadCategories_MissingFileCreatesEmptyBank(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, testCategories)

	data := b.LoadCategories()
	if len(data["Ciencia"]) != 0 || len(data["Historia"]) != 0 {
		t.Fatalf("Expected empty categories, got %v", data)
	}

	content, err := os.ReadFile(filepath.Join(dir, "Ciencia.json"))
	if err != nil {
		t.Fatalf("Expected file to be created: %v", err)
	}
	var arr []interface{}
	if err := json.Unmarshal(content, &arr); err != nil || len(arr) != 0 {
		t.Errorf("Expected empty JSON array, got %q", content)
	}
}

func TestLoadCategories_BadFilesRecover(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"malformed", "[{"},
		{"object", `{"pregunta": "x"}`},
		{"string", `"hola"`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "Ciencia.json", tt.content)
			b := New(dir, testCategories)

			data := b.LoadCategories()
			if data["Ciencia"] == nil || len(data["Ciencia"]) != 0 {
				t.Errorf("Expected empty bank, got %v", data["Ciencia"])
			}
		})
	}
}

func TestLoadCategories_DropsUnanswerableRecords(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Ciencia.json", `[
		{"pregunta": "¿Agua?", "opciones": ["H2O", "CO2", "O2", "N2"], "respuestaCorrecta": "H2O"},
		{"pregunta": "¿Sal?", "opciones": ["NaCl", "KCl", "HCl", "CaCl"], "respuestaCorrecta": "Sodio"},
		{"pregunta": 5}
	]`)
	b := New(dir, testCategories)

	data := b.LoadCategories()
	if len(data["Ciencia"]) != 1 || data["Ciencia"][0].Pregunta != "¿Agua?" {
		t.Errorf("Expected only the valid record, got %+v", data["Ciencia"])
	}
}

func TestAppendQuestion_RoundTrip(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, testCategories)
	b.LoadCategories()

	record := models.QuestionRecord{
		Pregunta:          "¿Quién escribió \"Rayuela\" <novela>?",
		Opciones:          []string{"Cortázar", "Borges", "Sábato", "Bioy & Casares"},
		RespuestaCorrecta: "Cortázar",
	}
	if err := b.AppendQuestion("Ciencia", record); err != nil {
		t.Fatalf("AppendQuestion failed: %v", err)
	}

	reloaded := New(dir, testCategories).LoadCategories()
	if len(reloaded["Ciencia"]) != 1 {
		t.Fatalf("Expected 1 question, got %d", len(reloaded["Ciencia"]))
	}
	if !reflect.DeepEqual(reloaded["Ciencia"][0], record) {
		t.Errorf("Record changed on disk: %+v", reloaded["Ciencia"][0])
	}

	// La memoria del banco también se actualizó.
	qs, err := b.Questions("Ciencia")
	if err != nil || len(qs) != 1 {
		t.Errorf("Expected in-memory refresh, got %v %v", qs, err)
	}
}

func TestAppendQuestion_PreservesExistingEntries(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Ciencia.json", `[{"pregunta": "vieja", "opciones": ["a", "b"], "respuestaCorrecta": "a", "autor": "profe"}]`)
	b := New(dir, testCategories)
	b.LoadCategories()

	if err := b.AppendQuestion("Ciencia", sampleRecord(1)); err != nil {
		t.Fatal(err)
	}

	content, _ := os.ReadFile(filepath.Join(dir, "Ciencia.json"))
	var arr []map[string]interface{}
	if err := json.Unmarshal(content, &arr); err != nil {
		t.Fatal(err)
	}
	if len(arr) != 2 || arr[0]["autor"] != "profe" {
		t.Errorf("Existing entry not preserved: %v", arr)
	}
}

func TestAppendQuestion_MalformedFileStartsEmpty(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "Ciencia.json", "no es json")
	b := New(dir, testCategories)

	if err := b.AppendQuestion("Ciencia", sampleRecord(1)); err != nil {
		t.Fatal(err)
	}
	qs, _ := b.Questions("Ciencia")
	if len(qs) != 1 {
		t.Errorf("Expected 1 question, got %d", len(qs))
	}
}

func TestAppendQuestion_WriteErrorKeepsMemory(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "bloqueo")
	writeFile(t, dir, "bloqueo", "")
	b := New(filepath.Join(blocker, "preguntas"), testCategories)

	err := b.AppendQuestion("Ciencia", sampleRecord(1))
	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("Expected *WriteError, got %v", err)
	}
	qs, _ := b.Questions("Ciencia")
	if len(qs) != 0 {
		t.Errorf("In-memory bank changed after failed write: %v", qs)
	}
}

func TestAppendQuestion_UnknownCategory(t *testing.T) {
	b := New(t.TempDir(), testCategories)
	if err := b.AppendQuestion("Astrología", sampleRecord(1)); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
	if _, err := b.Questions("Astrología"); !errors.Is(err, ErrUnknownCategory) {
		t.Errorf("Expected ErrUnknownCategory, got %v", err)
	}
}

func TestCategories_PlayableFlag(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, testCategories)
	b.LoadCategories()
	for i := 0; i < quiz.RoundSize; i++ {
		if err := b.AppendQuestion("Ciencia", sampleRecord(i)); err != nil {
			t.Fatal(err)
		}
	}
	b.AppendQuestion("Historia", sampleRecord(0))

	infos := b.Categories()
	if len(infos) != 2 || infos[0].Name != "Ciencia" {
		t.Fatalf("Unexpected categories %+v", infos)
	}
	if !infos[0].Playable || infos[0].Count != quiz.RoundSize {
		t.Errorf("Expected Ciencia playable with %d, got %+v", quiz.RoundSize, infos[0])
	}
	if infos[1].Playable {
		t.Errorf("Expected Historia not playable, got %+v", infos[1])
	}
}

func TestSubmit(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, testCategories)
	b.LoadCategories()

	record, err := b.Submit("Ciencia", models.QuestionSubmission{
		Pregunta: "  ¿2+2?  ",
		Opciones: []string{"3", " 4 ", "5", "6"},
		Correcta: 1,
	})
	if err != nil {
		t.Fatal(err)
	}
	if record.Pregunta != "¿2+2?" || record.RespuestaCorrecta != "4" {
		t.Errorf("Unexpected record %+v", record)
	}

	_, err = b.Submit("Astrología", models.QuestionSubmission{})
	var ve *ValidationError
	if !errors.As(err, &ve) || ve.Field != "categoria" {
		t.Errorf("Expected category validation error, got %v", err)
	}
}

func TestSubmit_ConcurrentAppendsAllPersist(t *testing.T) {
	dir := t.TempDir()
	b := New(dir, testCategories)
	b.LoadCategories()

	sheet := buildSheet(t, [][]interface{}{
		{"pregunta", "opcion1", "opcion2", "opcion3", "opcion4", "correcta"},
		{"¿Importada?", "a", "b", "c", "d", 1},
	})

	const n = 50
	var wg sync.WaitGroup
	errs := make(chan error, n+1)
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := b.Submit("Ciencia", models.QuestionSubmission{
				Pregunta: fmt.Sprintf("¿Pregunta concurrente %d?", i),
				Opciones: []string{"uno", "dos", "tres", "cuatro"},
				Correcta: 1,
			})
			errs <- err
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := b.ImportSpreadsheet("Ciencia", sheet)
		errs <- err
	}()
	wg.Wait()
	close(errs)

	for err := range errs {
		if err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	inMemory, _ := b.Questions("Ciencia")
	if len(inMemory) != n+1 {
		t.Errorf("Expected %d questions in memory, got %d", n+1, len(inMemory))
	}
	onDisk := b.LoadCategories()["Ciencia"]
	if len(onDisk) != n+1 {
		t.Errorf("Expected %d questions on disk, got %d", n+1, len(onDisk))
	}
}
