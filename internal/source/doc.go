// Package source loads assembly files and standard input into memory.
//
// Назначение: чтение файла целиком, снятие BOM, хеш содержимого.
// Не делает: разбиения на строки и форматирования (см. internal/format).
package source
