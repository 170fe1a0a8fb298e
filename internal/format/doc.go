// Package format implements the line formatter for assembly sources.
//
// Every physical line is classified (blank, macro boundary, instruction,
// label, verbatim) against the current macro state and rewritten: instructions
// get a fixed indent and normalized mnemonic case, labels may be split onto
// their own line, and everything else passes through untouched.
//
// Назначение: классификация и переписывание строк, обрезка хвостовых пустых строк.
// Не делает: разбора операндов, проверки синтаксиса, IO.
// Зависимости: golang.org/x/text/cases для смены регистра мнемоник.
package format
