/*
 * Copyright 2022 ByteDance Inc.
 *
 * Licensed under the Apache License, Version 2.0 (the "License");
 * you may not use this file except in compliance with the License.
 * You may obtain a copy of the License at
 *
 *     http://www.apache.org/licenses/LICENSE-2.0
 *
 * Unless required by applicable law or agreed to in writing, software
 * distributed under the License is distributed on an "AS IS" BASIS,
 * WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
 * See the License for the specific language governing permissions and
 * limitations under the License.
 */

package flo

import (
    `bufio`
    `bytes`
    `fmt`
    `io`
    `os`
)

// Write emits g in the flo text format: every memory first, then every
// operation in graph order. It fails without writing anything if a memory or
// an operand of any operation still has an unknown width.
func Write(w io.Writer, g *Graph) error {
    if err := Check(g); err != nil {
        return err
    }

    /* buffer the output */
    wr := bufio.NewWriter(w)

    /* memory declarations */
    for _, node := range g.nodes {
        if node.mem {
            if _, err := fmt.Fprintf(wr, "%s = mem'%d %d\n", node.name, node.width, node.depth); err != nil {
                return err
            }
        }
    }

    /* operations */
    for _, op := range g.ops {
        if _, err := fmt.Fprintln(wr, op.String()); err != nil {
            return err
        }
    }

    /* flush the buffer */
    return wr.Flush()
}

// WriteFile is like Write, but creates the named file. The file is only
// created when the whole graph can be written.
func WriteFile(path string, g *Graph) error {
    var buf bytes.Buffer
    if err := Write(&buf, g); err != nil {
        return err
    } else {
        return os.WriteFile(path, buf.Bytes(), 0644)
    }
}

// Check verifies that g can be written: every memory has a known width and
// depth, and every operand of every operation has a known width.
func Check(g *Graph) error {
    for _, node := range g.nodes {
        if node.mem && !(node.width.Known() && node.depth.Known()) {
            return EInvariant("writer", node, "memory with unknown width or depth")
        }
    }

    /* check every operand */
    for _, op := range g.ops {
        for _, node := range op.Operands() {
            if !node.width.Known() {
                return EUnknownWidth(node, op)
            }
        }
    }
    return nil
}
