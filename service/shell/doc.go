// Package shell implements the line oriented simulator console. Commands keep
// their Spanish aliases (ayuda, listar, ver, escribir, borrar, formatear,
// ejecutar, procesos, terminar, memoria, salir).
package shell
